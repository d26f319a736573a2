package config

import "time"

// Config holds runtime settings for the College Portal client.
//
// Fields:
//   - APIBaseURL: root of the portal REST API, e.g. http://localhost:5000/api.
//   - DatabasePath: sqlite file that keeps the session credential.
//   - RequestTimeout: upper bound for a single API request; 0 means none.
//   - SearchDebounce: quiet period before a search lookup is issued.
//   - SearchLimit: how many suggestions a lookup asks for.
//   - LookupTimeout: upper bound for one search lookup; 0 means none.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	SearchDebounce time.Duration
	SearchLimit    int
	LookupTimeout  time.Duration
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.DatabasePath = "~/.collegeportal/portal.db"
	c.RequestTimeout = 15 * time.Second
	c.SearchDebounce = 300 * time.Millisecond
	c.SearchLimit = 5
	c.LookupTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env included), JSON (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
