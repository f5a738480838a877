package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{
			name:     "empty text",
			text:     "",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "text shorter than limit",
			text:     "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "text exactly at limit",
			text:     "0123456789",
			maxLen:   10,
			expected: "0123456789",
		},
		{
			name:     "text over limit gets ellipsis",
			text:     "0123456789abc",
			maxLen:   10,
			expected: "0123456789...",
		},
		{
			name:     "trailing whitespace trimmed before ellipsis",
			text:     "01234567  \nrest of the message",
			maxLen:   10,
			expected: "01234567...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snippet(tt.text, tt.maxLen)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len(got), tt.maxLen+3)
		})
	}
}

func TestSnippetIsPrefix(t *testing.T) {
	text := strings.Repeat("support request ", 50)
	got := Snippet(text, DefaultSnippetLength)
	assert.True(t, strings.HasPrefix(text, strings.TrimSuffix(got, "...")))
}

func TestDetectUrgency(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"empty text", "", false},
		{"plain request", "Could you update my shipping address?", false},
		{"urgent keyword", "This is urgent, please respond", true},
		{"uppercase keyword", "Need this ASAP", true},
		{"mixed case keyword", "Production is Down since this morning", true},
		{"phrase keyword", "Please reply as soon as possible", true},
		{"blocked keyword", "Our team is blocked on this", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectUrgency(tt.text))
		})
	}
}

func TestExtractEmails(t *testing.T) {
	text := "Reach me at alice@example.com or bob.smith+tag@corp.example.org, thanks"
	emails := ExtractEmails(text)
	assert.Equal(t, []string{"alice@example.com", "bob.smith+tag@corp.example.org"}, emails)

	assert.Nil(t, ExtractEmails(""))
	assert.Empty(t, ExtractEmails("no addresses here"))
}

func TestExtractPhones(t *testing.T) {
	phones := ExtractPhones("Call me on +1 555-123-4567 tomorrow")
	assert.NotEmpty(t, phones)
	assert.Contains(t, phones[0], "555")

	assert.Nil(t, ExtractPhones(""))
}

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	short := tp.TruncateText("short text", 100)
	assert.Equal(t, "short text", short)

	long := tp.TruncateText(strings.Repeat("a", 200), 50)
	assert.True(t, strings.HasPrefix(long, strings.Repeat("a", 50)))
	assert.Contains(t, long, "Content truncated")
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	valid := "valid UTF-8 text with émojis 🎉"
	assert.Equal(t, valid, tp.SanitizeUTF8(valid))

	invalid := "broken \xc3\x28 sequence"
	sanitized := tp.SanitizeUTF8(invalid)
	assert.NotEqual(t, invalid, sanitized)
	assert.Contains(t, sanitized, "broken")
}
