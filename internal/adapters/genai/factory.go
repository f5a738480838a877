package genai

import (
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
)

// Factory creates hosted-endpoint clients from configuration
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for hosted-endpoint clients
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateClient creates a new client. A missing API key is only warned about
// here; the hard failure happens at first use.
func (f *Factory) CreateClient() (core.TextGenerator, error) {
	genaiCfg := f.cfg.GetGenAI()
	if genaiCfg.APIKey == "" {
		f.logger.Warn("Generation endpoint API key is not configured; LLM calls will fail until provided")
	}
	return NewClient(
		genaiCfg.APIKey,
		genaiCfg.Endpoint,
		genaiCfg.ModelName,
		genaiCfg.MaxTokens,
		f.logger,
	), nil
}
