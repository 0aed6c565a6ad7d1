package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mealsearch/internal/config"
	"mealsearch/internal/debug"
	appErrors "mealsearch/internal/errors"
	"mealsearch/internal/lookup"
	"mealsearch/internal/ui"
)

const importTimeout = time.Minute

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, newProgram))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer, factory programFactory) int {
	fs := flag.NewFlagSet("mealsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := registerFlags(fs, config.Load())
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *flags.version {
		printVersion(stdout)
		return 0
	}

	if err := debug.Init(*flags.debug); err != nil {
		fmt.Fprintf(stderr, "Error enabling debug log: %v\n", err)
		return 1
	}
	defer debug.Close()

	if err := config.ApplyOverrides(flags.overrides(fs)); err != nil {
		fmt.Fprintf(stderr, "Error applying flags: %v\n", err)
		return 1
	}
	settings := config.Load()
	debug.Event("settings loaded",
		"backend", settings.Backend,
		"debounce", settings.Debounce,
		"timeout", settings.LookupTimeout,
		"theme", settings.Theme,
	)

	if path := strings.TrimSpace(*flags.importPath); path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()
		n, err := runImport(ctx, path, settings.DatabasePath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Imported %d meals into %s\n", n, settings.DatabasePath)
		return 0
	}

	client, err := lookup.New(lookupOptions(settings))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := runProgram(uiConfig(settings, client), ui.NewApp, factory); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func newProgram(app *ui.App) programRunner {
	return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) error {
	app, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

// runImport loads a TheMealDB-shaped fixture into the SQLite database.
func runImport(ctx context.Context, fixturePath, dbPath string) (int, error) {
	if strings.TrimSpace(dbPath) == "" {
		return 0, appErrors.New(appErrors.CodeConfigurationError,
			"import requires lookup.database-path (or -db-path)", nil)
	}
	//nolint:gosec // G304: fixture path is supplied by the user on the command line
	f, err := os.Open(fixturePath)
	if err != nil {
		return 0, fmt.Errorf("open fixture: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	meals, err := lookup.DecodeMeals(f)
	if err != nil {
		return 0, fmt.Errorf("read fixture %s: %w", fixturePath, err)
	}
	n, err := lookup.ImportMeals(ctx, dbPath, meals)
	if err != nil {
		return 0, err
	}
	debug.Event("fixture imported", "path", fixturePath, "db", dbPath, "meals", n)
	return n, nil
}

func lookupOptions(s config.Settings) lookup.Options {
	return lookup.Options{
		Backend:      s.Backend,
		BaseURL:      s.BaseURL,
		Timeout:      s.LookupTimeout,
		DatabasePath: s.DatabasePath,
		FixturePath:  s.FixturePath,
	}
}

func uiConfig(s config.Settings, client lookup.Client) ui.Config {
	return ui.Config{
		Lookup:        client,
		Reporter:      debug.FetchReporter{},
		Debounce:      s.Debounce,
		LookupTimeout: s.LookupTimeout,
		MaxVisible:    s.MaxVisible,
		OutputFormat:  s.OutputFormat,
		Theme:         s.Theme,
		Version:       Version,
	}
}
