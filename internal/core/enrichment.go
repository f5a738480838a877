package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/utils"
)

// Category labels assigned by Classify
const (
	CategorySupport   = "Support"
	CategoryBilling   = "Billing"
	CategoryTechnical = "Technical"
	CategoryGeneral   = "General"
)

// Classification priority labels (wider range than the stored email priority)
const (
	ClassPriorityHigh   = "High"
	ClassPriorityMedium = "Medium"
	ClassPriorityLow    = "Low"
)

// FallbackReply is returned when draft generation fails outright
const FallbackReply = "Sorry - we're looking into this and will get back shortly."

// Token budgets per prompt kind
const (
	sentimentMaxTokens = 40
	entitiesMaxTokens  = 150
	classifyMaxTokens  = 150
	draftMaxTokens     = 350
)

const sentimentPrompt = "Classify the sentiment of the following text as one word: Positive, Neutral, or Negative.\n\nText:\n%s\n\nAnswer with a single word."

const entitiesPrompt = "Extract a one-sentence summary of the customer's request from the text below, and detect if there are urgency indicators. Output JSON with keys: {\"requirements\": \"...\", \"urgency\": \"yes\" | \"no\" }.\n\nText:\n%s\n\nJSON:"

const classifyPrompt = "Categorize the following email into one of: Support, Billing, Technical, General.\nAlso assign a priority: High, Medium, Low.\n\nEmail:\n%s\n\nRespond in JSON with keys { \"category\": \"...\", \"priority\": \"...\" }."

const draftHeader = "You are a professional customer support agent. Write a short (3-6 sentences), empathetic, and action-oriented reply. Mention next steps and expected timelines if applicable. Keep it polite and use a professional tone."

// EnrichmentService wraps the four prompt templates over one text-generation
// backend. All LLM failures degrade to conservative defaults; a flaky model
// call never fails the request.
type EnrichmentService struct {
	llm           TextGenerator
	cache         EnrichmentCache
	logger        *zap.Logger
	textProc      *utils.TextProcessor
	cacheEnabled  bool
	cacheTTL      time.Duration
	maxPromptSize int
	supportDomain string
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(
	llm TextGenerator,
	cache EnrichmentCache,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	maxPromptSize int,
	supportDomain string,
) *EnrichmentService {
	return &EnrichmentService{
		llm:           llm,
		cache:         cache,
		logger:        logger,
		textProc:      utils.NewTextProcessor(logger),
		cacheEnabled:  cacheEnabled,
		cacheTTL:      cacheTTL,
		maxPromptSize: maxPromptSize,
		supportDomain: supportDomain,
	}
}

// prepare bounds and sanitizes body text before it is interpolated into a
// prompt. Entity extraction and cache keys still see the full text.
func (s *EnrichmentService) prepare(text string) string {
	if s.maxPromptSize <= 0 {
		return text
	}
	return s.textProc.ProcessText(text, s.maxPromptSize)
}

// ClassifySentiment labels text as positive, neutral, or negative. Empty text
// short-circuits to neutral without calling the backend; so does any backend
// failure.
func (s *EnrichmentService) ClassifySentiment(ctx context.Context, text string) string {
	if text == "" {
		return SentimentNeutral
	}

	out, err := s.llm.GenerateText(ctx, fmt.Sprintf(sentimentPrompt, s.prepare(text)), sentimentMaxTokens)
	if err != nil {
		s.logger.Error("Sentiment classification failed", zap.Error(err))
		return SentimentNeutral
	}

	lowered := strings.ToLower(strings.TrimSpace(out))
	switch {
	case strings.Contains(lowered, "positive"):
		return SentimentPositive
	case strings.Contains(lowered, "negative"):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ExtractEntities pulls phone/email candidates locally and asks the backend
// for a one-sentence requirement summary plus an urgency flag.
func (s *EnrichmentService) ExtractEntities(ctx context.Context, text string) EntitySummary {
	phones := utils.ExtractPhones(text)
	emails := utils.ExtractEmails(text)

	summary := EntitySummary{
		Phone:    first(phones),
		AltEmail: s.pickAltEmail(emails),
	}

	out, err := s.llm.GenerateText(ctx, fmt.Sprintf(entitiesPrompt, s.prepare(text)), entitiesMaxTokens)
	if err != nil {
		s.logger.Error("Entity extraction failed", zap.Error(err))
		summary.Urgency = utils.DetectUrgency(text)
		return summary
	}

	var parsed struct {
		Requirements string `json:"requirements"`
		Urgency      string `json:"urgency"`
	}
	trimmed := strings.TrimSpace(out)
	if jsonStr, ok := extractJSONObject(trimmed); ok && json.Unmarshal([]byte(jsonStr), &parsed) == nil {
		summary.Requirements = parsed.Requirements
		summary.Urgency = parsed.Urgency == "yes"
		return summary
	}

	// Parse failure: fall back to the first line of raw output and local
	// keyword detection
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		summary.Requirements = trimmed[:idx]
	} else {
		summary.Requirements = trimmed
	}
	summary.Urgency = utils.DetectUrgency(text)
	return summary
}

// Classify assigns a category and priority to an email body. Any backend or
// parse failure defaults to {General, Low}. Results are cached by content hash
// when the cache is enabled.
func (s *EnrichmentService) Classify(ctx context.Context, text string) Classification {
	key := contentKey(text)

	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, key); err == nil {
			s.logger.Debug("Classification cache hit", zap.String("key", key))
			return Classification{Category: entry.Category, Priority: entry.Priority}
		}
	}

	result := s.classify(ctx, text)

	if s.cacheEnabled && s.cache != nil {
		entry := &CacheEntry{
			Key:       key,
			Category:  result.Category,
			Priority:  result.Priority,
			CachedAt:  time.Now(),
			ExpiresAt: time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update classification cache", zap.Error(err))
		}
	}

	return result
}

func (s *EnrichmentService) classify(ctx context.Context, text string) Classification {
	fallback := Classification{Category: CategoryGeneral, Priority: ClassPriorityLow}

	out, err := s.llm.GenerateText(ctx, fmt.Sprintf(classifyPrompt, s.prepare(text)), classifyMaxTokens)
	if err != nil {
		s.logger.Error("Classification failed", zap.Error(err))
		return fallback
	}

	var parsed Classification
	jsonStr, ok := extractJSONObject(strings.TrimSpace(out))
	if !ok || json.Unmarshal([]byte(jsonStr), &parsed) != nil {
		return fallback
	}

	if parsed.Category == "" {
		parsed.Category = CategoryGeneral
	}
	if parsed.Priority == "" {
		parsed.Priority = ClassPriorityLow
	}
	return parsed
}

// GenerateDraftReply produces an empathetic candidate reply. A backend failure
// yields a fixed apologetic fallback with lowered confidence instead of an
// error.
func (s *EnrichmentService) GenerateDraftReply(ctx context.Context, req DraftRequest) DraftReply {
	subject := req.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	from := req.From
	if from == "" {
		from = "(unknown)"
	}

	var b strings.Builder
	b.WriteString(draftHeader)
	b.WriteString("\n\n")
	if req.KBContext != "" {
		b.WriteString("Context (KB):\n")
		b.WriteString(req.KBContext)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Customer email subject: %s\nFrom: %s\n\nEmail body:\n%s\n\nReply:", subject, from, s.prepare(req.Body))

	out, err := s.llm.GenerateText(ctx, b.String(), draftMaxTokens)
	if err != nil {
		s.logger.Error("Draft generation failed", zap.Error(err))
		return DraftReply{Reply: FallbackReply, Model: s.llm.ModelName(), Confidence: 0.5}
	}

	return DraftReply{Reply: strings.TrimSpace(out), Model: s.llm.ModelName(), Confidence: 0.9}
}

// pickAltEmail prefers the first address outside the configured support domain
func (s *EnrichmentService) pickAltEmail(emails []string) string {
	if s.supportDomain != "" {
		suffix := "@" + strings.ToLower(s.supportDomain)
		for _, e := range emails {
			if !strings.HasSuffix(strings.ToLower(e), suffix) {
				return e
			}
		}
	}
	return first(emails)
}

// extractJSONObject is the best-effort brace-scan strategy for pulling a JSON
// object out of free-form LLM output: slice from the first '{' to the last '}'.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, '}')
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
