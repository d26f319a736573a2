package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/collegeportal/internal/flagx"
	"github.com/dmitrijs2005/collegeportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration, so they may be strings like "300ms" or
// integer nanoseconds. Absent keys leave the Config untouched, which is why
// the numeric fields are pointers: an explicit 0 still overrides.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	DatabasePath   string          `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SearchDebounce *timex.Duration `json:"search_debounce"`
	SearchLimit    *int            `json:"search_limit"`
	LookupTimeout  *timex.Duration `json:"lookup_timeout"`
	LogLevel       string          `json:"log_level"`
	LogBackend     string          `json:"log_backend"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SearchDebounce != nil {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.SearchLimit != nil {
		cfg.SearchLimit = *jc.SearchLimit
	}
	if jc.LookupTimeout != nil {
		cfg.LookupTimeout = jc.LookupTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogBackend != "" {
		cfg.LogBackend = jc.LogBackend
	}
}
