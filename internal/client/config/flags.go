package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        API base URL
//	-d string        path of the local sqlite database
//	-t int           request timeout in seconds (0 disables)
//	-debounce int    search quiet period in milliseconds
//	-l string        log level (debug, info, warn, error)
//
// os.Args is filtered with flagx.FilterArgs first so that -c/-config and
// other foreign flags do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-debounce", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	debounce := fs.Int("debounce", int(cfg.SearchDebounce.Milliseconds()), "search quiet period (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.SearchDebounce = time.Duration(*debounce) * time.Millisecond
}
