package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the stores depend on. The unique ones
// back the insert-if-absent guarantees for users, content and newsletter.
func EnsureIndexes(ctx context.Context, m *Mongo) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ContentCollection: {
			{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		NewsletterCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "subscribedAt", Value: -1}}},
		},
		InquiriesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		VolunteersCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		MediaCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := m.OpenCollection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
