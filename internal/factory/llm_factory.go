package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/adapters/bedrock"
	"github.com/mikey/inbox-assistant/internal/adapters/gemini"
	"github.com/mikey/inbox-assistant/internal/adapters/genai"
	"github.com/mikey/inbox-assistant/internal/adapters/openai"
	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
)

// LLMFactory creates text-generation clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextGenerator creates a new text-generation client based on the
// configuration. The hosted REST endpoint is the default provider.
func (f *LLMFactory) CreateTextGenerator() (core.TextGenerator, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "genai":
		return genai.NewFactory(f.cfg, f.logger).CreateClient()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateClient()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
