package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamohar/foundationbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoMediaStore struct {
	col *mongo.Collection
}

func NewMongoMediaStore(col *mongo.Collection) *MongoMediaStore {
	return &MongoMediaStore{col: col}
}

func (s *MongoMediaStore) Insert(ctx context.Context, asset *models.MediaAsset) error {
	if asset.ID.IsZero() {
		asset.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, asset); err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	return nil
}

func (s *MongoMediaStore) List(ctx context.Context) ([]models.MediaAsset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.MediaAsset, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return items, nil
}

func (s *MongoMediaStore) Get(ctx context.Context, id string) (*models.MediaAsset, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var asset models.MediaAsset
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&asset); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find media: %w", err)
	}
	return &asset, nil
}

func (s *MongoMediaStore) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
