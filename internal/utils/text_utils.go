package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultSnippetLength is the bounded preview length used for stored emails
const DefaultSnippetLength = 200

var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern   = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{2,4}\)?[-.\s]?)?[\d.\s-]{6,14}\d`)
	urgencyPattern = regexp.MustCompile(`(?i)urgent|immediately|asap|as soon as possible|critical|blocked|down`)
)

// ExtractEmails returns all address-shaped substrings in order of appearance.
// No deduplication is performed.
func ExtractEmails(text string) []string {
	if text == "" {
		return nil
	}
	return emailPattern.FindAllString(text, -1)
}

// ExtractPhones returns all phone-number-shaped substrings. The pattern is
// deliberately permissive and may over-match.
func ExtractPhones(text string) []string {
	if text == "" {
		return nil
	}
	return phonePattern.FindAllString(text, -1)
}

// Snippet returns text unchanged when it fits in maxLen, otherwise the first
// maxLen bytes trimmed of trailing whitespace with an ellipsis marker appended.
func Snippet(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	if len(text) <= maxLen {
		return text
	}
	return strings.TrimRight(text[:maxLen], " \t\r\n") + "..."
}

// DetectUrgency reports whether the text contains any urgency keyword,
// case-insensitively.
func DetectUrgency(text string) bool {
	if text == "" {
		return false
	}
	return urgencyPattern.MatchString(text)
}

// TextProcessor provides utilities for preparing text before it is sent to an LLM
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText safely truncates text to the specified maximum size
// and ensures the result is valid UTF-8
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]

	// Ensure the truncated text ends with a valid UTF-8 sequence
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated + "\n[... Content truncated due to size limits ...]"
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	return string(result)
}

// ProcessText truncates and sanitizes text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, maxSize))
}
