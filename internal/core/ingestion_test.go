package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailbox struct {
	messages []RawMessage
	err      error
	gotMax   int
}

func (m *fakeMailbox) ListCandidates(_ context.Context, max int) ([]RawMessage, error) {
	m.gotMax = max
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

// fakeEmailStore deduplicates on ExternalID the way the real store's unique
// index does
type fakeEmailStore struct {
	byExternalID map[string]*Email
	insertErr    error
}

func newFakeEmailStore() *fakeEmailStore {
	return &fakeEmailStore{byExternalID: map[string]*Email{}}
}

func (s *fakeEmailStore) InsertBatch(_ context.Context, emails []*Email) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, e := range emails {
		if _, ok := s.byExternalID[e.ExternalID]; ok {
			continue
		}
		s.byExternalID[e.ExternalID] = e
	}
	return nil
}

func (s *fakeEmailStore) Insert(ctx context.Context, email *Email) error {
	return s.InsertBatch(ctx, []*Email{email})
}

func (s *fakeEmailStore) GetByID(context.Context, string) (*Email, error) {
	return nil, ErrNotFound
}

func (s *fakeEmailStore) ListSince(context.Context, time.Time) ([]*Email, error) {
	out := make([]*Email, 0, len(s.byExternalID))
	for _, e := range s.byExternalID {
		out = append(out, e)
	}
	return out, nil
}

func TestIngest(t *testing.T) {
	mailbox := &fakeMailbox{messages: []RawMessage{
		{
			ExternalID: "msg-1",
			ThreadID:   "thread-1",
			From:       "jane@customer.org",
			To:         "support@example.com",
			Subject:    "URGENT: server down",
			Body:       strings.Repeat("Our production server has been down for an hour. ", 10),
			Date:       "Thu, 21 Aug 2025 09:15:00 +0000",
		},
		{
			ExternalID: "msg-2",
			From:       "bob@customer.org",
			Subject:    "please help asap",
			Body:       "short body",
			Snippet:    "provider snippet",
		},
	}}
	store := newFakeEmailStore()
	svc := NewIngestionService(mailbox, store, zap.NewNop(), 10)

	emails, err := svc.Ingest(context.Background())

	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, 10, mailbox.gotMax)
	assert.Len(t, store.byExternalID, 2)

	first := emails[0]
	assert.Equal(t, "msg-1", first.ExternalID)
	assert.Equal(t, "URGENT: server down", first.Subject)
	assert.Empty(t, first.Sentiment, "ingestion must not classify")
	assert.Empty(t, first.Priority, "ingestion must not classify")
	assert.False(t, first.CreatedAt.IsZero())

	// Long body gets a bounded snippet; an explicit provider snippet survives
	assert.True(t, strings.HasSuffix(first.Snippet, "..."))
	assert.LessOrEqual(t, len(first.Snippet), 203)
	assert.Equal(t, "provider snippet", emails[1].Snippet)
}

func TestIngestDuplicatesSkipped(t *testing.T) {
	mailbox := &fakeMailbox{messages: []RawMessage{
		{ExternalID: "msg-1", Subject: "first fetch", Body: "body"},
	}}
	store := newFakeEmailStore()
	svc := NewIngestionService(mailbox, store, zap.NewNop(), 5)

	_, err := svc.Ingest(context.Background())
	require.NoError(t, err)

	// Same message comes back in a second run while still unread
	emails, err := svc.Ingest(context.Background())
	require.NoError(t, err)

	assert.Len(t, emails, 1, "fetched records are always returned")
	assert.Len(t, store.byExternalID, 1, "duplicate external id must not create a second record")
	assert.Equal(t, "first fetch", store.byExternalID["msg-1"].Subject)
}

func TestIngestMailboxFailure(t *testing.T) {
	mailbox := &fakeMailbox{err: errors.New("provider unavailable")}
	svc := NewIngestionService(mailbox, newFakeEmailStore(), zap.NewNop(), 5)

	emails, err := svc.Ingest(context.Background())

	assert.Error(t, err)
	assert.Nil(t, emails)
}

func TestIngestStoreFailureStillReturnsRecords(t *testing.T) {
	mailbox := &fakeMailbox{messages: []RawMessage{
		{ExternalID: "msg-1", Body: "body"},
	}}
	store := newFakeEmailStore()
	store.insertErr = errors.New("write concern failed")
	svc := NewIngestionService(mailbox, store, zap.NewNop(), 5)

	emails, err := svc.Ingest(context.Background())

	require.NoError(t, err, "insert failures are best-effort")
	assert.Len(t, emails, 1)
}
