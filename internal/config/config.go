package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyDebounce = "debounce"

	KeyLookupBackend      = "lookup.backend"
	KeyLookupBaseURL      = "lookup.base-url"
	KeyLookupTimeout      = "lookup.timeout"
	KeyLookupDatabasePath = "lookup.database-path"
	KeyLookupFixturePath  = "lookup.fixture-path"

	KeyMaxVisible   = "ui.max-visible"
	KeyOutputFormat = "output.format"
	KeyTheme        = "theme"
)

const (
	// DefaultDebounce is the quiet period before typed text is looked up.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultLookupTimeout bounds a single lookup request.
	DefaultLookupTimeout = 10 * time.Second
	// DefaultBaseURL is the public TheMealDB v1 endpoint.
	DefaultBaseURL    = "https://www.themealdb.com/api/json/v1/1"
	DefaultMaxVisible = 8

	configDirName  = ".mealsearch"
	configFileName = "config.yaml"
	envPrefix      = "MS"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// userConfigPathOverride is used by tests to override the user config path.
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt fetches an integer configuration value, initializing on demand.
func GetInt(key string) int {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetInt(key)
}

// bareDurationUnit is the unit applied to a duration key given as a bare
// number: `debounce: 250` is 250ms, `lookup.timeout: 10` is 10s.
var bareDurationUnit = map[string]time.Duration{
	KeyDebounce:      time.Millisecond,
	KeyLookupTimeout: time.Second,
}

// GetDuration fetches a duration configuration value, initializing on demand.
// Bare numbers use the key's unit from bareDurationUnit, milliseconds for
// unlisted keys.
func GetDuration(key string) time.Duration {
	v, err := getViper()
	if err != nil {
		return 0
	}
	unit, ok := bareDurationUnit[key]
	if !ok {
		unit = time.Millisecond
	}
	raw := v.Get(key)
	switch n := raw.(type) {
	case int:
		return time.Duration(n) * unit
	case int64:
		return time.Duration(n) * unit
	case float64:
		return time.Duration(n * float64(unit))
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return time.Duration(i) * unit
		}
	}
	return v.GetDuration(key)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	configInst.Set(key, value)
	return nil
}

// Settings is the typed view of the configuration used at startup.
type Settings struct {
	Debounce      time.Duration
	Backend       string
	BaseURL       string
	LookupTimeout time.Duration
	DatabasePath  string
	FixturePath   string
	MaxVisible    int
	OutputFormat  string
	Theme         string
}

// Load reads the current configuration into Settings, replacing
// non-positive durations and sizes with their defaults.
func Load() Settings {
	s := Settings{
		Debounce:      GetDuration(KeyDebounce),
		Backend:       strings.ToLower(strings.TrimSpace(GetString(KeyLookupBackend))),
		BaseURL:       strings.TrimRight(strings.TrimSpace(GetString(KeyLookupBaseURL)), "/"),
		LookupTimeout: GetDuration(KeyLookupTimeout),
		DatabasePath:  strings.TrimSpace(GetString(KeyLookupDatabasePath)),
		FixturePath:   strings.TrimSpace(GetString(KeyLookupFixturePath)),
		MaxVisible:    GetInt(KeyMaxVisible),
		OutputFormat:  strings.TrimSpace(GetString(KeyOutputFormat)),
		Theme:         strings.TrimSpace(GetString(KeyTheme)),
	}
	if s.Debounce <= 0 {
		s.Debounce = DefaultDebounce
	}
	if s.LookupTimeout <= 0 {
		s.LookupTimeout = DefaultLookupTimeout
	}
	if s.MaxVisible <= 0 {
		s.MaxVisible = DefaultMaxVisible
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Backend == "" {
		s.Backend = "http"
	}
	return s
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if userConfigPath != projectConfigPath {
		if err := mergeConfigFile(v, projectConfigPath); err != nil {
			return fmt.Errorf("load project config: %w", err)
		}
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, configDirName, configFileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDebounce, DefaultDebounce.String())
	v.SetDefault(KeyLookupBackend, "http")
	v.SetDefault(KeyLookupBaseURL, DefaultBaseURL)
	v.SetDefault(KeyLookupTimeout, DefaultLookupTimeout.String())
	v.SetDefault(KeyLookupDatabasePath, "")
	v.SetDefault(KeyLookupFixturePath, "")
	v.SetDefault(KeyMaxVisible, DefaultMaxVisible)
	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyTheme, "tokyonight")
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

// reset clears package state for tests.
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	userConfigPathOverride = filepath.Join(tmp, "user.yaml")
	return reset
}

// SaveTheme persists the theme name to the appropriate config file.
// If a project config (.mealsearch/config.yaml) exists, it updates that file.
// Otherwise, it updates the user config (~/.mealsearch/config.yaml).
// The user config directory is auto-created if needed, but project config
// directories are never auto-created.
func SaveTheme(themeName string) error {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)
	_ = v.ReadInConfig() // missing file is fine

	v.Set(KeyTheme, themeName)

	dir := filepath.Dir(targetPath)
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return Set(KeyTheme, themeName)
}

// findWritableConfigPath determines which config file to write to.
// Returns project config path if it exists, otherwise user config path.
func findWritableConfigPath() (string, error) {
	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	wd, err := os.Getwd()
	if err == nil {
		projectPath, err := findProjectConfig(wd)
		if err == nil && projectPath != "" {
			return projectPath, nil
		}
	}
	return defaultUserConfigPath()
}
