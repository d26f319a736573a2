package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "COLLEGEPORTAL_"

// parseEnv overlays Config with COLLEGEPORTAL_* variables. Variables from
// envFiles (".env" when none are given) are loaded first; a missing file is
// fine, and variables already set in the process win over the file.
//
// Recognised variables:
//
//	COLLEGEPORTAL_API_URL          APIBaseURL
//	COLLEGEPORTAL_DB               DatabasePath
//	COLLEGEPORTAL_REQUEST_TIMEOUT  RequestTimeout ("15s")
//	COLLEGEPORTAL_SEARCH_DEBOUNCE  SearchDebounce ("300ms")
//	COLLEGEPORTAL_SEARCH_LIMIT     SearchLimit
//	COLLEGEPORTAL_LOOKUP_TIMEOUT   LookupTimeout ("10s", "0" disables)
//	COLLEGEPORTAL_LOG_LEVEL        LogLevel
//	COLLEGEPORTAL_LOG_BACKEND      LogBackend
//
// Panics on malformed values, like the other loaders.
func parseEnv(cfg *Config, envFiles ...string) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := lookup("API_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup("DB"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup("REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = mustDuration("REQUEST_TIMEOUT", v)
	}
	if v, ok := lookup("SEARCH_DEBOUNCE"); ok {
		cfg.SearchDebounce = mustDuration("SEARCH_DEBOUNCE", v)
	}
	if v, ok := lookup("SEARCH_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(errors.New(EnvPrefix + "SEARCH_LIMIT: " + err.Error()))
		}
		cfg.SearchLimit = n
	}
	if v, ok := lookup("LOOKUP_TIMEOUT"); ok {
		cfg.LookupTimeout = mustDuration("LOOKUP_TIMEOUT", v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("LOG_BACKEND"); ok {
		cfg.LogBackend = v
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// mustDuration accepts Go durations; a bare "0" is zero.
func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(errors.New(EnvPrefix + name + ": " + err.Error()))
	}
	return d
}
