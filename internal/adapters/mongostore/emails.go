package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
)

// EmailStore is the MongoDB implementation of the core.EmailStore interface
type EmailStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewEmailStore creates a new email store over the shared connection
func NewEmailStore(store *Store) *EmailStore {
	return &EmailStore{
		coll:   store.db.Collection(emailsCollection),
		logger: store.logger,
	}
}

// InsertBatch inserts records unordered so one failure does not abort the
// rest. Duplicate external identifiers are silently dropped, never updated.
func (s *EmailStore) InsertBatch(ctx context.Context, emails []*core.Email) error {
	if len(emails) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(emails))
	for _, e := range emails {
		docs = append(docs, e)
	}

	_, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.logger.Debug("Skipped duplicate external ids during batch insert")
			return nil
		}
		return fmt.Errorf("failed to insert email batch: %w", err)
	}
	return nil
}

// Insert stores a single record. A duplicate external identifier is an error
// to the caller since there is no batch to continue with.
func (s *EmailStore) Insert(ctx context.Context, email *core.Email) error {
	now := time.Now()
	if email.CreatedAt.IsZero() {
		email.CreatedAt = now
	}
	email.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to insert email: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		email.ID = oid
	}
	return nil
}

// GetByID returns the record or core.ErrNotFound
func (s *EmailStore) GetByID(ctx context.Context, id string) (*core.Email, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}

	var email core.Email
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch email: %w", err)
	}
	return &email, nil
}

// ListSince returns records created at or after the given time, newest first
func (s *EmailStore) ListSince(ctx context.Context, since time.Time) ([]*core.Email, error) {
	cur, err := s.coll.Find(ctx,
		bson.M{"createdAt": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer cur.Close(ctx)

	var emails []*core.Email
	if err := cur.All(ctx, &emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	return emails, nil
}
