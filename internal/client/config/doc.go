// Package config loads runtime configuration for the College Portal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory (joho/godotenv),
//     then COLLEGEPORTAL_* variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string        API base URL
//	-d string        path of the local sqlite database
//	-t int           request timeout (seconds)
//	-debounce int    search quiet period (milliseconds)
//	-l string        log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like
// "300ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "database_path": "~/.collegeportal/portal.db",
//	  "request_timeout": "15s",
//	  "search_debounce": "300ms",
//	  "search_limit": 5,
//	  "lookup_timeout": "10s",
//	  "log_level": "info",
//	  "log_backend": "zerolog"
//	}
package config
