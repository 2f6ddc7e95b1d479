package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "redis", cfg.WizardStore)
	assert.Equal(t, 30, cfg.WizardTTLMinutes)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, "INR", cfg.Currency)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("WIZARD_STORE", "memory")
	t.Setenv("BACKEND_BASE_URL", "http://backend:8000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "memory", cfg.WizardStore)
	assert.Equal(t, "http://backend:8000", cfg.BackendBaseURL)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{CORSOrigins: " http://a.test ,http://b.test,, "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
