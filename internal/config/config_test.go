package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "genai", cfg.GetLLM().Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.GetGenAI().ModelName)
	assert.Equal(t, 300, cfg.GetGenAI().MaxTokens)
	assert.Equal(t, 10, cfg.GetGmail().MaxResults)
	assert.Equal(t, "inbox_assistant", cfg.GetMongo().Database)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetString("server.listen_address"))
	assert.Equal(t, "memory", cfg.GetString("cache.type"))
	assert.True(t, cfg.GetBool("cache.enabled"))
	assert.Equal(t, "gmail", cfg.GetString("outbound.transport"))
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("llm.provider", "openai")
	v.Set("openai.api_key", "sk-test")
	v.Set("gmail.support_domain", "corp.example.com")
	cfg := NewFromViper(v)

	assert.Equal(t, "openai", cfg.GetLLM().Provider)
	assert.Equal(t, "sk-test", cfg.GetOpenAI().APIKey)
	assert.Equal(t, "corp.example.com", cfg.GetGmail().SupportDomain)
}

func TestGetDuration(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	ttl, err := cfg.GetDuration("cache.ttl")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	_, err = cfg.GetDuration("logging.level")
	assert.Error(t, err)
}

func TestCredentialsDefaultEmpty(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	gmail := cfg.GetGmail()
	assert.Empty(t, gmail.ClientID)
	assert.Empty(t, gmail.AccessToken)
	assert.Empty(t, gmail.RefreshToken)
	assert.Empty(t, cfg.GetGenAI().APIKey)
}
