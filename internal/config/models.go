package config

// LLMConfig represents the top-level LLM provider selection
type LLMConfig struct {
	Provider      string
	MaxPromptSize int
}

// GenAIConfig represents the configuration for the hosted generation endpoint
type GenAIConfig struct {
	APIKey    string
	Endpoint  string
	ModelName string
	MaxTokens int
}

// GeminiConfig represents the configuration for the Gemini SDK provider
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	Temperature float32
	TopP        float32
}

// GmailConfig represents the mailbox provider configuration
type GmailConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURI   string
	AccessToken   string
	RefreshToken  string
	MaxResults    int
	SupportDomain string
}

// SMTPConfig represents the alternate outbound reply transport
type SMTPConfig struct {
	Address  string
	Username string
	Password string
	From     string
}

// MongoConfig represents the document store configuration
type MongoConfig struct {
	URI      string
	Database string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:      c.GetString("llm.provider"),
		MaxPromptSize: c.GetInt("llm.max_prompt_size"),
	}
}

// GetGenAI returns the hosted generation endpoint configuration
func (c *Config) GetGenAI() GenAIConfig {
	return GenAIConfig{
		APIKey:    c.GetString("genai.api_key"),
		Endpoint:  c.GetString("genai.endpoint"),
		ModelName: c.GetString("genai.model_name"),
		MaxTokens: c.GetInt("genai.max_tokens"),
	}
}

// GetGemini returns the Gemini SDK configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGmail returns the mailbox provider configuration
func (c *Config) GetGmail() GmailConfig {
	return GmailConfig{
		ClientID:      c.GetString("gmail.client_id"),
		ClientSecret:  c.GetString("gmail.client_secret"),
		RedirectURI:   c.GetString("gmail.redirect_uri"),
		AccessToken:   c.GetString("gmail.access_token"),
		RefreshToken:  c.GetString("gmail.refresh_token"),
		MaxResults:    c.GetInt("gmail.max_results"),
		SupportDomain: c.GetString("gmail.support_domain"),
	}
}

// GetSMTP returns the SMTP transport configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Address:  c.GetString("smtp.address"),
		Username: c.GetString("smtp.username"),
		Password: c.GetString("smtp.password"),
		From:     c.GetString("smtp.from"),
	}
}

// GetMongo returns the document store configuration
func (c *Config) GetMongo() MongoConfig {
	return MongoConfig{
		URI:      c.GetString("mongo.uri"),
		Database: c.GetString("mongo.database"),
	}
}
