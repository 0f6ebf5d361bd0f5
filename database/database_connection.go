package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection      = "users"
	ContentCollection    = "content"
	InquiriesCollection  = "inquiries"
	VolunteersCollection = "volunteers"
	NewsletterCollection = "newsletter"
	MediaCollection      = "media"
)

type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens one client for the whole process and checks the primary is
// reachable.
func Connect(ctx context.Context, uri, databaseName string) (*Mongo, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	slog.Info("connected to mongo", "database", databaseName)

	return &Mongo{Client: client, DB: client.Database(databaseName)}, nil
}

func (m *Mongo) OpenCollection(collectionName string) *mongo.Collection {
	return m.DB.Collection(collectionName)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
