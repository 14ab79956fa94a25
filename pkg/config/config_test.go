package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSessionSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadDevelopmentFallsBackToDevSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
}

func TestLoadProductionWithSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
}
