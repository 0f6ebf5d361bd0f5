package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type contentDocument struct {
	ID        bson.ObjectID    `bson:"_id,omitempty"`
	Type      string           `bson:"type"`
	Sections  bson.Raw         `bson:"sections"`
	Versions  map[string]int64 `bson:"versions"`
	CreatedAt time.Time        `bson:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

type MongoContentStore struct {
	col *mongo.Collection
}

func NewMongoContentStore(col *mongo.Collection) *MongoContentStore {
	return &MongoContentStore{col: col}
}

// InsertIfAbsent upserts on the document type. The unique index on "type"
// guarantees a single document even when first reads race.
func (s *MongoContentStore) InsertIfAbsent(ctx context.Context, key string, sections map[string]any) (bool, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"type":      key,
			"sections":  sections,
			"versions":  bson.M{},
			"createdAt": now,
			"updatedAt": now,
		},
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"type": key}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("init content: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

func (s *MongoContentStore) Get(ctx context.Context, key string) (*models.SiteContent, error) {
	var doc contentDocument
	if err := s.col.FindOne(ctx, bson.M{"type": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}

	sections, err := rawToJSONMap(doc.Sections)
	if err != nil {
		return nil, err
	}
	versions := doc.Versions
	if versions == nil {
		versions = map[string]int64{}
	}

	return &models.SiteContent{
		Type:      doc.Type,
		Sections:  sections,
		Versions:  versions,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *MongoContentStore) ReplaceSection(ctx context.Context, key, name string, value any, baseVersion *int64) (int64, error) {
	versionField := "versions." + name

	filter := bson.M{"type": key}
	if baseVersion != nil {
		if *baseVersion == 0 {
			filter[versionField] = bson.M{"$exists": false}
		} else {
			filter[versionField] = *baseVersion
		}
	}

	update := bson.M{
		"$set": bson.M{
			"sections." + name: value,
			"updatedAt":        time.Now().UTC(),
		},
		"$inc": bson.M{versionField: int64(1)},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"versions": 1})

	var updated struct {
		Versions map[string]int64 `bson:"versions"`
	}
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return updated.Versions[name], nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("update section: %w", err)
	}

	n, err := s.col.CountDocuments(ctx, bson.M{"type": key})
	if err != nil {
		return 0, fmt.Errorf("update section: %w", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return 0, ErrVersionConflict
}

// rawToJSONMap turns stored sections back into plain JSON values. Going
// through relaxed extended JSON avoids bson.D leaking into API responses.
func rawToJSONMap(raw bson.Raw) (map[string]any, error) {
	out := map[string]any{}
	if len(raw) == 0 {
		return out, nil
	}
	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	if err := json.Unmarshal(ext, &out); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return out, nil
}
