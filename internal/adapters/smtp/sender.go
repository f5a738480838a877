package smtp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// Sender is an SMTP implementation of the ReplySender interface, used when
// outbound replies should not go through the mailbox provider's send API.
type Sender struct {
	address  string
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSender creates a new SMTP sender
func NewSender(address, username, password, from string, logger *zap.Logger) *Sender {
	return &Sender{
		address:  address,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// SendReply submits a plain-text reply over SMTP and returns the generated
// message id
func (s *Sender) SendReply(ctx context.Context, to, subject, bodyText, inReplyTo string) (string, error) {
	msgID := fmt.Sprintf("<%d@inbox-assistant>", time.Now().UnixNano())

	var lines []string
	lines = append(lines, "Message-ID: "+msgID)
	if inReplyTo != "" {
		lines = append(lines, "In-Reply-To: "+inReplyTo)
	}
	lines = append(lines,
		"From: "+s.from,
		"To: "+to,
		"Subject: "+subject,
		`Content-Type: text/plain; charset="UTF-8"`,
		"MIME-Version: 1.0",
		"",
		bodyText,
	)
	msg := strings.NewReader(strings.Join(lines, "\r\n"))

	var auth sasl.Client
	if s.username != "" {
		auth = sasl.NewPlainClient("", s.username, s.password)
	}

	if err := smtp.SendMail(s.address, auth, s.from, []string{to}, msg); err != nil {
		return "", fmt.Errorf("failed to send reply over SMTP: %w", err)
	}

	s.logger.Info("Reply sent over SMTP",
		zap.String("to", to),
		zap.String("message_id", msgID))

	return msgID, nil
}
