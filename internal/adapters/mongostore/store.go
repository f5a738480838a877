package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
)

const (
	emailsCollection    = "emails"
	responsesCollection = "responses"
)

// Store owns the MongoDB client for the process lifetime. It is constructed
// once by the entry point and handed to the record stores; nothing else
// re-establishes connections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewStore connects to MongoDB, verifies the connection, and ensures the
// unique index on the email external identifier.
func NewStore(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: %w", core.ErrMissingCredentials)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	store := &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}

	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return store, nil
}

// ensureIndexes creates the unique index backing external-id deduplication
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(emailsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "externalId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create externalId index: %w", err)
	}
	return nil
}

// Close disconnects the underlying client
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongo: %w", err)
	}
	return nil
}
