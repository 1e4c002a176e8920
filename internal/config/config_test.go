package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, int64(20971520), cfg.Server.MaxUploadSize)

	assert.Equal(t, "buildathon", cfg.Storage.BucketName)
	assert.Equal(t, "buildathon_ppt", cfg.Storage.Folder)

	assert.Equal(t, "Buildathon", cfg.Mongo.Database)
	assert.Equal(t, "submissions", cfg.Mongo.Collection)

	assert.Equal(t, "https://openrouter.ai/api/v1/chat/completions", cfg.OpenRouter.APIURL)
	assert.Equal(t, "deepseek/deepseek-r1:free", cfg.OpenRouter.Model)
	assert.InDelta(t, 0.7, cfg.OpenRouter.Temperature, 0.001)
	assert.Equal(t, 3000, cfg.OpenRouter.MaxTokens)
	assert.Equal(t, 3, cfg.OpenRouter.RetryCount)
	assert.Equal(t, 2*time.Second, cfg.OpenRouter.RetryDelay)
	assert.Equal(t, 100000, cfg.OpenRouter.MaxPromptChars)

	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
}
