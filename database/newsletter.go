package database

import (
	"context"
	"fmt"

	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoNewsletterStore struct {
	col *mongo.Collection
}

func NewMongoNewsletterStore(col *mongo.Collection) *MongoNewsletterStore {
	return &MongoNewsletterStore{col: col}
}

func (s *MongoNewsletterStore) Subscribe(ctx context.Context, sub *models.NewsletterSubscription) (bool, error) {
	if sub.ID.IsZero() {
		sub.ID = bson.NewObjectID()
	}
	email := utils.NormalizeEmail(sub.Email)

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":          sub.ID,
			"email":        email,
			"subscribedAt": sub.SubscribedAt,
		},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("subscribe: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

func (s *MongoNewsletterStore) List(ctx context.Context) ([]models.NewsletterSubscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.NewsletterSubscription, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return items, nil
}

func (s *MongoNewsletterStore) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
