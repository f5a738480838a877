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

// ResponseStore is the MongoDB implementation of the core.ResponseStore
// interface
type ResponseStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewResponseStore creates a new response store over the shared connection
func NewResponseStore(store *Store) *ResponseStore {
	return &ResponseStore{
		coll:   store.db.Collection(responsesCollection),
		logger: store.logger,
	}
}

// Insert stores a new response, defaulting SentAt to insertion time and the
// source tag to auto
func (s *ResponseStore) Insert(ctx context.Context, response *core.Response) error {
	now := time.Now()
	if response.SentAt.IsZero() {
		response.SentAt = now
	}
	if response.Source == "" {
		response.Source = core.SourceAuto
	}
	response.CreatedAt = now
	response.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, response)
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		response.ID = oid
	}
	return nil
}

// GetByID returns the record or core.ErrNotFound
func (s *ResponseStore) GetByID(ctx context.Context, id string) (*core.Response, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}

	var response core.Response
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch response: %w", err)
	}
	return &response, nil
}

// ListByEmail returns the response history for an email, newest first
func (s *ResponseStore) ListByEmail(ctx context.Context, emailID string) ([]*core.Response, error) {
	oid, err := bson.ObjectIDFromHex(emailID)
	if err != nil {
		return nil, core.ErrNotFound
	}

	cur, err := s.coll.Find(ctx,
		bson.M{"emailId": oid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer cur.Close(ctx)

	var responses []*core.Response
	if err := cur.All(ctx, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}
	return responses, nil
}

// UpdateReply replaces the reply text and marks the record as human-edited
func (s *ResponseStore) UpdateReply(ctx context.Context, id string, replyText string) (*core.Response, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"replyText": replyText,
		"edited":    true,
		"source":    core.SourceHuman,
		"updatedAt": time.Now(),
	}}

	var response core.Response
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&response)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update response: %w", err)
	}
	return &response, nil
}
