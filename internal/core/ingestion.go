package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// IngestionService pulls candidate messages from the mailbox and persists them
// as Email records. Insertion is best-effort: duplicate external ids are
// skipped silently and no enrichment happens here.
type IngestionService struct {
	mailbox    Mailbox
	emails     EmailStore
	logger     *zap.Logger
	maxResults int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(mailbox Mailbox, emails EmailStore, logger *zap.Logger, maxResults int) *IngestionService {
	return &IngestionService{
		mailbox:    mailbox,
		emails:     emails,
		logger:     logger,
		maxResults: maxResults,
	}
}

// Ingest lists unread candidate messages and stores them. The fetched records
// are returned even when some inserts were skipped as duplicates.
func (s *IngestionService) Ingest(ctx context.Context) ([]*Email, error) {
	raw, err := s.mailbox.ListCandidates(ctx, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate messages: %w", err)
	}

	now := time.Now()
	emails := make([]*Email, 0, len(raw))
	for _, msg := range raw {
		emails = append(emails, NewEmailFromRaw(msg, now))
	}

	if len(emails) > 0 {
		if err := s.emails.InsertBatch(ctx, emails); err != nil {
			// Partial-batch failures do not abort ingestion; the fetched
			// records are still returned to the caller.
			s.logger.Error("Best-effort insert reported an error", zap.Error(err))
		}
	}

	s.logger.Info("Ingestion completed",
		zap.Int("fetched", len(emails)),
		zap.Int("max_results", s.maxResults))

	return emails, nil
}
