package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mikey/inbox-assistant/internal/core"
	"github.com/mikey/inbox-assistant/internal/utils"
)

// candidateQuery filters to unread messages whose subject looks like a
// support request
const candidateQuery = "is:unread subject:(support OR query OR request OR help)"

// Scopes required against the mailbox provider
var Scopes = []string{
	gmailapi.GmailReadonlyScope,
	gmailapi.GmailSendScope,
	gmailapi.GmailModifyScope,
}

// Client is a Gmail implementation of the Mailbox and ReplySender interfaces.
// OAuth client credentials are static process configuration; missing values
// are warned about at construction and only fail at first use.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	accessToken  string
	refreshToken string
	logger       *zap.Logger
}

// NewClient creates a new Gmail client
func NewClient(cfg GmailSettings, logger *zap.Logger) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		accessToken:  cfg.AccessToken,
		refreshToken: cfg.RefreshToken,
		logger:       logger,
	}
}

// GmailSettings carries the provider credentials and token pair
type GmailSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AccessToken  string
	RefreshToken string
}

// service builds an authenticated Gmail service. This is where missing
// credentials turn into a hard error.
func (c *Client) service(ctx context.Context) (*gmailapi.Service, error) {
	if c.accessToken == "" && c.refreshToken == "" {
		return nil, fmt.Errorf("gmail: %w", core.ErrMissingCredentials)
	}

	conf := &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  c.redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
	token := &oauth2.Token{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
	}

	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return svc, nil
}

// ListCandidates returns up to max unread support messages. Per-message fetch
// failures are logged and skipped, so the result may be shorter than the
// match count.
func (c *Client) ListCandidates(ctx context.Context, max int) ([]core.RawMessage, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	res, err := svc.Users.Messages.List("me").
		Q(candidateQuery).
		MaxResults(int64(max)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	out := make([]core.RawMessage, 0, len(res.Messages))
	for _, m := range res.Messages {
		msg, err := svc.Users.Messages.Get("me", m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			c.logger.Error("Failed to fetch message",
				zap.String("message_id", m.Id),
				zap.Error(err))
			continue
		}

		body := ExtractBody(msg.Payload)
		snippet := msg.Snippet
		if snippet == "" {
			snippet = utils.Snippet(body, utils.DefaultSnippetLength)
		}

		out = append(out, core.RawMessage{
			ExternalID: m.Id,
			ThreadID:   msg.ThreadId,
			Snippet:    snippet,
			Body:       body,
			From:       header(msg.Payload, "From"),
			To:         header(msg.Payload, "To"),
			Subject:    header(msg.Payload, "Subject"),
			Date:       header(msg.Payload, "Date"),
		})
	}

	return out, nil
}

// SendReply builds a minimal RFC-822 message, base64url-encodes it, and
// submits it through the provider's send operation.
func (c *Client) SendReply(ctx context.Context, to, subject, bodyText, inReplyTo string) (string, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return "", err
	}

	res, err := svc.Users.Messages.Send("me", &gmailapi.Message{
		Raw: BuildRawMessage(to, subject, bodyText, inReplyTo),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return res.Id, nil
}

// BuildRawMessage assembles the base64url-encoded RFC-822 payload expected by
// the send operation
func BuildRawMessage(to, subject, bodyText, inReplyTo string) string {
	var lines []string
	if inReplyTo != "" {
		lines = append(lines, "In-Reply-To: "+inReplyTo)
	}
	lines = append(lines,
		"To: "+to,
		"Subject: "+subject,
		`Content-Type: text/plain; charset="UTF-8"`,
		"MIME-Version: 1.0",
		"",
		bodyText,
	)
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(lines, "\r\n")))
}

// ExtractBody reconstructs the message body by depth-first traversal of the
// MIME part tree, preferring the first text/plain part and falling back to
// the first text/html part rendered as text.
func ExtractBody(payload *gmailapi.MessagePart) string {
	var plain, html string

	var walk func(part *gmailapi.MessagePart)
	walk = func(part *gmailapi.MessagePart) {
		if part == nil || plain != "" {
			return
		}
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			if text, err := decodePartData(part.Body.Data); err == nil {
				plain = text
			}
			return
		}
		if part.MimeType == "text/html" && html == "" && part.Body != nil && part.Body.Data != "" {
			if text, err := decodePartData(part.Body.Data); err == nil {
				html = text
			}
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(payload)

	if plain != "" {
		return plain
	}
	if html != "" {
		if text, err := html2text.FromString(html, html2text.Options{TextOnly: true}); err == nil {
			return text
		}
		return html
	}
	return ""
}

// decodePartData decodes the provider's base64url part data, which may or may
// not carry padding
func decodePartData(data string) (string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// header reads a header value case-insensitively from the top-level part
func header(payload *gmailapi.MessagePart, name string) string {
	if payload == nil {
		return ""
	}
	for _, h := range payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
