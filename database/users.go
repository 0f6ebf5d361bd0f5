package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(col *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{col: col}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": utils.NormalizeEmail(email)})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// InsertIfAbsent relies on the unique email index: concurrent callers either
// upsert or match, and a losing upsert race surfaces as a duplicate key.
func (s *MongoUserStore) InsertIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	email := utils.NormalizeEmail(user.Email)

	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":          user.ID,
			"email":        email,
			"passwordHash": user.PasswordHash,
			"name":         user.Name,
			"role":         user.Role,
			"isActive":     user.IsActive,
			"createdAt":    user.CreatedAt,
			"updatedAt":    user.UpdatedAt,
		},
	}

	res, err := s.col.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("seed user upsert failed: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
