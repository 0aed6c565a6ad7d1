package main

import (
	"flag"
	"strings"
	"time"

	"mealsearch/internal/config"
)

type cliFlags struct {
	version    *bool
	debug      *bool
	importPath *string

	backend      *string
	baseURL      *string
	dbPath       *string
	fixturePath  *string
	debounce     *time.Duration
	timeout      *time.Duration
	outputFormat *string
	theme        *string
}

// flagKeys maps flags that override configuration to their config keys.
var flagKeys = map[string]string{
	"backend":       config.KeyLookupBackend,
	"base-url":      config.KeyLookupBaseURL,
	"db-path":       config.KeyLookupDatabasePath,
	"fixture":       config.KeyLookupFixturePath,
	"debounce":      config.KeyDebounce,
	"timeout":       config.KeyLookupTimeout,
	"output-format": config.KeyOutputFormat,
	"theme":         config.KeyTheme,
}

// registerFlags defines the command line, showing the configured values as
// defaults.
func registerFlags(fs *flag.FlagSet, defaults config.Settings) cliFlags {
	return cliFlags{
		version:    fs.Bool("version", false, "Print version information and exit"),
		debug:      fs.Bool("debug", false, "Write a debug log to ~/.mealsearch/debug.log"),
		importPath: fs.String("import", "", "Import a TheMealDB JSON file into the SQLite database and exit"),

		backend:      fs.String("backend", defaults.Backend, "Lookup backend (http, sqlite, file)"),
		baseURL:      fs.String("base-url", defaults.BaseURL, "TheMealDB API base URL for the http backend"),
		dbPath:       fs.String("db-path", defaults.DatabasePath, "SQLite database for the sqlite backend and -import"),
		fixturePath:  fs.String("fixture", defaults.FixturePath, "JSON fixture for the file backend"),
		debounce:     fs.Duration("debounce", defaults.Debounce, "Quiet period before typed text is looked up"),
		timeout:      fs.Duration("timeout", defaults.LookupTimeout, "Upper bound for a single lookup"),
		outputFormat: fs.String("output-format", defaults.OutputFormat, "Recipe pane markdown style (rich, light, dracula, plain)"),
		theme:        fs.String("theme", defaults.Theme, "Color theme"),
	}
}

// overrides returns config values for the flags given explicitly on the
// command line. Flags left alone never shadow config or environment.
func (f cliFlags) overrides(fs *flag.FlagSet) map[string]any {
	values := map[string]any{
		"backend":       strings.TrimSpace(*f.backend),
		"base-url":      strings.TrimSpace(*f.baseURL),
		"db-path":       strings.TrimSpace(*f.dbPath),
		"fixture":       strings.TrimSpace(*f.fixturePath),
		"debounce":      f.debounce.String(),
		"timeout":       f.timeout.String(),
		"output-format": strings.TrimSpace(*f.outputFormat),
		"theme":         strings.TrimSpace(*f.theme),
	}
	out := map[string]any{}
	fs.Visit(func(fl *flag.Flag) {
		if key, ok := flagKeys[fl.Name]; ok {
			out[key] = values[fl.Name]
		}
	})
	return out
}
