package core

import (
	"context"
	"time"
)

// TextGenerator defines the interface to a hosted text-generation backend
type TextGenerator interface {
	// GenerateText sends a prompt and returns the generated text
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)

	// ModelName identifies the backing model for reporting purposes
	ModelName() string
}

// Mailbox defines the interface for listing candidate support messages
type Mailbox interface {
	// ListCandidates returns up to max unread messages matching the support query.
	// Per-message fetch failures are skipped, so the result may be shorter than
	// the match count.
	ListCandidates(ctx context.Context, max int) ([]RawMessage, error)
}

// ReplySender defines the interface for submitting an outbound reply
type ReplySender interface {
	// SendReply sends bodyText to the recipient and returns the provider's
	// message handle. inReplyTo optionally threads the reply.
	SendReply(ctx context.Context, to, subject, bodyText, inReplyTo string) (string, error)
}

// EmailStore defines storage access for Email records
type EmailStore interface {
	// InsertBatch inserts records best-effort: duplicate external ids are
	// silently skipped and one bad record does not abort the batch.
	InsertBatch(ctx context.Context, emails []*Email) error

	// Insert stores a single record
	Insert(ctx context.Context, email *Email) error

	// GetByID returns the record or ErrNotFound
	GetByID(ctx context.Context, id string) (*Email, error)

	// ListSince returns records created at or after the given time
	ListSince(ctx context.Context, since time.Time) ([]*Email, error)
}

// ResponseStore defines storage access for Response records
type ResponseStore interface {
	// Insert stores a new response
	Insert(ctx context.Context, response *Response) error

	// GetByID returns the record or ErrNotFound
	GetByID(ctx context.Context, id string) (*Response, error)

	// ListByEmail returns the response history for an email
	ListByEmail(ctx context.Context, emailID string) ([]*Response, error)

	// UpdateReply replaces the reply text and marks the record as human-edited
	UpdateReply(ctx context.Context, id string, replyText string) (*Response, error)
}

// EnrichmentCache defines the interface for caching classification results
type EnrichmentCache interface {
	// Get retrieves a cached entry by content key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
