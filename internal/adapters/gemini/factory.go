package gemini

import (
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateClient creates a new GeminiClient
func (f *Factory) CreateClient() (core.TextGenerator, error) {
	geminiCfg := f.cfg.GetGemini()
	return NewGeminiClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		f.logger,
	)
}
