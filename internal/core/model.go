package core

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mikey/inbox-assistant/internal/utils"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrMissingCredentials is returned when a required credential is absent at first use
	ErrMissingCredentials = errors.New("required credentials are not configured")
)

// Sentiment labels assigned by the enrichment service
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Priority labels stored on email records
const (
	PriorityHigh = "high"
	PriorityLow  = "low"
)

// Email is a stored support email. ExternalID is the mailbox provider's stable
// message id and is unique across all records; insert conflicts are dropped,
// never updated.
type Email struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ExternalID string        `bson:"externalId" json:"externalId"`
	ThreadID   string        `bson:"threadId,omitempty" json:"threadId,omitempty"`
	From       string        `bson:"from" json:"from"`
	To         string        `bson:"to" json:"to"`
	Subject    string        `bson:"subject" json:"subject"`
	Body       string        `bson:"body" json:"body"`
	Snippet    string        `bson:"snippet" json:"snippet"`
	Date       string        `bson:"date" json:"date"`
	Sentiment  string        `bson:"sentiment,omitempty" json:"sentiment,omitempty"`
	Priority   string        `bson:"priority,omitempty" json:"priority,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Response is a stored reply draft tied to an Email record. Referential
// integrity of EmailID is the caller's responsibility.
type Response struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EmailID   bson.ObjectID `bson:"emailId" json:"emailId"`
	UserID    string        `bson:"userId,omitempty" json:"userId,omitempty"`
	ReplyText string        `bson:"replyText" json:"replyText"`
	SentAt    time.Time     `bson:"sentAt" json:"sentAt"`
	Edited    bool          `bson:"edited" json:"edited"`
	Source    string        `bson:"source" json:"source"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Response source tags
const (
	SourceAuto  = "auto"
	SourceHuman = "human"
)

// RawMessage is a candidate message as fetched from the mailbox provider,
// before it becomes a stored Email record.
type RawMessage struct {
	ExternalID string `json:"externalId"`
	ThreadID   string `json:"threadId,omitempty"`
	Snippet    string `json:"snippet"`
	Body       string `json:"body"`
	From       string `json:"from"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Date       string `json:"date"`
}

// NewEmailFromRaw converts a fetched message into a storable Email record.
// Sentiment and priority stay unset until a separate classification call.
func NewEmailFromRaw(raw RawMessage, now time.Time) *Email {
	snippet := raw.Snippet
	if snippet == "" {
		snippet = utils.Snippet(raw.Body, utils.DefaultSnippetLength)
	}
	return &Email{
		ExternalID: raw.ExternalID,
		ThreadID:   raw.ThreadID,
		From:       raw.From,
		To:         raw.To,
		Subject:    raw.Subject,
		Body:       raw.Body,
		Snippet:    snippet,
		Date:       raw.Date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Classification is a category/priority pair assigned to an email body
type Classification struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// EntitySummary holds extracted contact details and the LLM's requirement summary
type EntitySummary struct {
	Phone        string `json:"phone,omitempty"`
	AltEmail     string `json:"altEmail,omitempty"`
	Requirements string `json:"requirements"`
	Urgency      bool   `json:"urgency"`
}

// DraftRequest describes the email a reply draft should be generated for
type DraftRequest struct {
	From      string
	Subject   string
	Body      string
	KBContext string
}

// DraftReply is a generated candidate reply, not yet sent
type DraftReply struct {
	Reply      string  `json:"reply"`
	Model      string  `json:"model"`
	Confidence float64 `json:"confidence"`
}

// CacheEntry is a cached classification result keyed by a content hash
type CacheEntry struct {
	Key       string
	Category  string
	Priority  string
	CachedAt  time.Time
	ExpiresAt time.Time
}
