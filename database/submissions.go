package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamohar/foundationbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoSubmissionStore stores one kind of reviewable submission (inquiries,
// volunteer applications) in its own collection.
type MongoSubmissionStore[T any, PT submissionPtr[T]] struct {
	col *mongo.Collection
}

func NewMongoSubmissionStore[T any, PT submissionPtr[T]](col *mongo.Collection) *MongoSubmissionStore[T, PT] {
	return &MongoSubmissionStore[T, PT]{col: col}
}

func (s *MongoSubmissionStore[T, PT]) Insert(ctx context.Context, rec *T) error {
	meta := PT(rec).Meta()
	if meta.ID.IsZero() {
		meta.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert %s: %w", s.col.Name(), err)
	}
	return nil
}

func (s *MongoSubmissionStore[T, PT]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.col.Name(), err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.col.Name(), err)
	}
	return items, nil
}

func (s *MongoSubmissionStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var rec T
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", s.col.Name(), err)
	}
	return &rec, nil
}

// SetStatus is a single conditional update, so two admins racing on the same
// record cannot both apply transitions from the same starting status.
func (s *MongoSubmissionStore[T, PT]) SetStatus(ctx context.Context, id string, from []models.SubmissionStatus, status models.SubmissionStatus) error {
	oid, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	filter := bson.M{"_id": oid, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update %s status: %w", s.col.Name(), err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("update %s status: %w", s.col.Name(), err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStatusConflict
}

func (s *MongoSubmissionStore[T, PT]) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete %s: %w", s.col.Name(), err)
	}
	return nil
}
