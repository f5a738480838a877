package gmail

import (
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/config"
)

// Factory creates Gmail clients from configuration
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for Gmail clients
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateClient creates a new Gmail client. Missing client credentials are a
// warning here, not an error; the failure is deferred to first use.
func (f *Factory) CreateClient() *Client {
	gmailCfg := f.cfg.GetGmail()

	if gmailCfg.ClientID == "" || gmailCfg.ClientSecret == "" || gmailCfg.RedirectURI == "" {
		f.logger.Warn("Gmail client credentials not fully configured")
	}

	return NewClient(GmailSettings{
		ClientID:     gmailCfg.ClientID,
		ClientSecret: gmailCfg.ClientSecret,
		RedirectURI:  gmailCfg.RedirectURI,
		AccessToken:  gmailCfg.AccessToken,
		RefreshToken: gmailCfg.RefreshToken,
	}, f.logger)
}
