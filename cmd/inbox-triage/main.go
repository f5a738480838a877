package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
	"github.com/mikey/inbox-assistant/internal/factory"
	"github.com/mikey/inbox-assistant/internal/logging"
)

var (
	// LLM provider flags
	provider  = flag.String("provider", "genai", "LLM provider (genai, gemini, openai, bedrock)")
	maxTokens = flag.Int("max-tokens", 300, "Maximum tokens for LLM response")

	// Hosted endpoint flags
	genaiAPIKey   = flag.String("genai-api-key", "", "API key for the hosted generation endpoint")
	genaiEndpoint = flag.String("genai-endpoint", "", "Override URL for the hosted generation endpoint")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	inputFile  = flag.String("file", "", "Input email body file (use stdin if not specified)")
	subject    = flag.String("subject", "", "Email subject used for the draft prompt")
	from       = flag.String("from", "", "Sender address used for the draft prompt")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

// triageResult is the full enrichment of one email body
type triageResult struct {
	Sentiment      string              `json:"sentiment"`
	Entities       core.EntitySummary  `json:"entities"`
	Classification core.Classification `json:"classification"`
	Draft          core.DraftReply     `json:"draft"`
}

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	// Read the email body
	body, err := readInput()
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}
	if body == "" {
		logger.Fatal("Empty input; nothing to triage")
	}

	// Initialize LLM client
	llmFactory := factory.NewLLMFactory(cfg, logger)
	llm, err := llmFactory.CreateTextGenerator()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// No cache for one-shot runs
	enrichment := core.NewEnrichmentService(llm, nil, logger, false, 0,
		cfg.GetLLM().MaxPromptSize, cfg.GetGmail().SupportDomain)

	ctx := context.Background()
	result := triageResult{
		Sentiment:      enrichment.ClassifySentiment(ctx, body),
		Entities:       enrichment.ExtractEntities(ctx, body),
		Classification: enrichment.Classify(ctx, body),
		Draft: enrichment.GenerateDraftReply(ctx, core.DraftRequest{
			From:    *from,
			Subject: *subject,
			Body:    body,
		}),
	}

	if closer, ok := llm.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("Failed to marshal result", zap.Error(err))
	}
	fmt.Println(string(out))
}

// readInput reads the email body from the input file or stdin
func readInput() (string, error) {
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// createConfigFromFlags builds a configuration from the command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)

	if *genaiAPIKey != "" {
		v.Set("genai.api_key", *genaiAPIKey)
	}
	if *genaiEndpoint != "" {
		v.Set("genai.endpoint", *genaiEndpoint)
	}
	v.Set("genai.max_tokens", *maxTokens)

	if *geminiAPIKey != "" {
		v.Set("gemini.api_key", *geminiAPIKey)
	}
	v.Set("gemini.model_name", *geminiModelName)

	if *openaiAPIKey != "" {
		v.Set("openai.api_key", *openaiAPIKey)
	}
	v.Set("openai.model_name", *openaiModelName)

	v.Set("bedrock.region", *bedrockRegion)
	v.Set("bedrock.model_id", *bedrockModelID)

	return config.NewFromViper(v)
}
