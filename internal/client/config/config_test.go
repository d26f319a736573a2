package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:5000/api",
		DatabasePath:   "~/.collegeportal/portal.db",
		RequestTimeout: 15 * time.Second,
		SearchDebounce: 300 * time.Millisecond,
		SearchLimit:    5,
		LookupTimeout:  10 * time.Second,
		LogLevel:       "info",
		LogBackend:     "slog",
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Empty(t, cmp.Diff(defaults(), &c))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://json:1/api",
		"search_debounce": "150ms",
		"log_backend":     "zerolog",
	})
	unsetEnv(t)
	t.Setenv(EnvPrefix+"API_URL", "http://env:1/api")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")
	t.Setenv(EnvPrefix+"SEARCH_LIMIT", "7")
	os.Args = []string{"testbin", "-c", path, "-debounce", "500"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	want := defaults()
	want.APIBaseURL = "http://json:1/api"
	want.LogLevel = "warn"
	want.SearchLimit = 7
	want.LogBackend = "zerolog"
	want.SearchDebounce = 500 * time.Millisecond
	assert.Empty(t, cmp.Diff(want, cfg))
}
