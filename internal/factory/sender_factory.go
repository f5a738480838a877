package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/adapters/gmail"
	"github.com/mikey/inbox-assistant/internal/adapters/smtp"
	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
)

// SenderFactory selects the outbound reply transport
type SenderFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSenderFactory creates a new sender factory
func NewSenderFactory(cfg *config.Config, logger *zap.Logger) *SenderFactory {
	return &SenderFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReplySender creates a reply sender based on the configuration. The
// Gmail client is reused as-is when the provider's send API is selected.
func (f *SenderFactory) CreateReplySender(gmailClient *gmail.Client) (core.ReplySender, error) {
	switch f.cfg.GetString("outbound.transport") {
	case "gmail":
		return gmailClient, nil
	case "smtp":
		smtpCfg := f.cfg.GetSMTP()
		return smtp.NewSender(
			smtpCfg.Address,
			smtpCfg.Username,
			smtpCfg.Password,
			smtpCfg.From,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported outbound transport: %s", f.cfg.GetString("outbound.transport"))
	}
}
