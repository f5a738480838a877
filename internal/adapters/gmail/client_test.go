package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
)

func encodePart(text string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(text))
}

func TestExtractBody(t *testing.T) {
	tests := []struct {
		name     string
		payload  *gmailapi.MessagePart
		expected string
	}{
		{
			name:     "nil payload",
			payload:  nil,
			expected: "",
		},
		{
			name: "top-level plain part",
			payload: &gmailapi.MessagePart{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: encodePart("plain body")},
			},
			expected: "plain body",
		},
		{
			name: "plain preferred over html",
			payload: &gmailapi.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/html",
						Body:     &gmailapi.MessagePartBody{Data: encodePart("<p>html body</p>")},
					},
					{
						MimeType: "text/plain",
						Body:     &gmailapi.MessagePartBody{Data: encodePart("plain body")},
					},
				},
			},
			expected: "plain body",
		},
		{
			name: "nested multipart tree",
			payload: &gmailapi.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*gmailapi.MessagePart{
							{
								MimeType: "text/plain",
								Body:     &gmailapi.MessagePartBody{Data: encodePart("deep plain body")},
							},
						},
					},
				},
			},
			expected: "deep plain body",
		},
		{
			name: "no body data at all",
			payload: &gmailapi.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmailapi.MessagePart{
					{MimeType: "application/pdf"},
				},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBody(tt.payload))
		})
	}
}

func TestExtractBodyHTMLFallback(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/html",
		Body: &gmailapi.MessagePartBody{
			Data: encodePart("<html><body><p>rendered from html</p></body></html>"),
		},
	}

	got := ExtractBody(payload)

	assert.Contains(t, got, "rendered from html")
	assert.NotContains(t, got, "<p>")
}

func TestExtractBodyPaddedData(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte("padded body"))
	payload := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: padded},
	}

	assert.Equal(t, "padded body", ExtractBody(payload))
}

func TestBuildRawMessage(t *testing.T) {
	raw := BuildRawMessage("jane@customer.org", "Re: Login broken", "We are on it.", "msg-1")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)

	lines := strings.Split(string(decoded), "\r\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "In-Reply-To: msg-1", lines[0])
	assert.Equal(t, "To: jane@customer.org", lines[1])
	assert.Equal(t, "Subject: Re: Login broken", lines[2])
	assert.Equal(t, `Content-Type: text/plain; charset="UTF-8"`, lines[3])
	assert.Equal(t, "MIME-Version: 1.0", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "We are on it.", lines[6])
}

func TestBuildRawMessageWithoutThreading(t *testing.T) {
	raw := BuildRawMessage("jane@customer.org", "Hello", "body", "")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)

	text := string(decoded)
	assert.NotContains(t, text, "In-Reply-To")
	assert.True(t, strings.HasPrefix(text, "To: jane@customer.org\r\n"))
}

func TestHeaderLookup(t *testing.T) {
	payload := &gmailapi.MessagePart{
		Headers: []*gmailapi.MessagePartHeader{
			{Name: "FROM", Value: "jane@customer.org"},
			{Name: "Subject", Value: "help"},
		},
	}

	assert.Equal(t, "jane@customer.org", header(payload, "From"))
	assert.Equal(t, "help", header(payload, "subject"))
	assert.Equal(t, "", header(payload, "Date"))
	assert.Equal(t, "", header(nil, "From"))
}
