package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/logging"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
)

// Default configuration values exported for documentation and validation
const (
	DefaultTickInterval   = runtime.DefaultTickRate
	DefaultMaxFPS         = 30
	DefaultForeground     = "default"
	DefaultBackground     = "default"
	DefaultSelectionColor = "blue"
	DefaultHighlightColor = "yellow"
	DefaultBorderStyle    = "single"
	DefaultLogLevel       = string(logging.LevelInfo)
)

// Config represents the complete cellframe configuration
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// UIConfig controls the host loop and the look of the widget tree.
type UIConfig struct {
	TickInterval   time.Duration `yaml:"tick_interval"`
	MaxFPS         int           `yaml:"max_fps"` // 0 renders on every input
	Foreground     string        `yaml:"foreground"`
	Background     string        `yaml:"background"`
	SelectionColor string        `yaml:"selection_color"`
	HighlightColor string        `yaml:"highlight_color"`
	BorderStyle    string        `yaml:"border_style"` // none, single or double
}

// LoggingConfig controls the JSON-lines event log.
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
}

// Theme is the UI section resolved to drawing types.
type Theme struct {
	Colors    backend.Style
	Selection backend.Color
	Highlight backend.Color
	Border    runtime.BorderStyle
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			TickInterval:   DefaultTickInterval,
			MaxFPS:         DefaultMaxFPS,
			Foreground:     DefaultForeground,
			Background:     DefaultBackground,
			SelectionColor: DefaultSelectionColor,
			HighlightColor: DefaultHighlightColor,
			BorderStyle:    DefaultBorderStyle,
		},
		Logging: LoggingConfig{
			Dir:   defaultLogDir(),
			Level: DefaultLogLevel,
		},
	}
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".cellframe", "logs")
}

// Load loads configuration from default locations with proper precedence:
// defaults, then ~/.cellframe/config.yaml, then ./.cellframe/config.yaml,
// then CELLFRAME_* environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".cellframe", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, wrapLoad(err, "loading user config")
		}
	}

	projectConfigPath := filepath.Join(".", ".cellframe", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, wrapLoad(err, "loading project config")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, wrapLoad(err, "loading config from "+path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wrapLoad keeps parse errors and tags everything else as a load failure.
func wrapLoad(err error, message string) error {
	if errors.IsCode(err, errors.ErrCodeConfigParse) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeConfigLoad, message)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CELLFRAME_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UI.TickInterval = d
		}
	}
	if v := os.Getenv("CELLFRAME_MAX_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.MaxFPS = n
		}
	}
	if v := os.Getenv("CELLFRAME_FOREGROUND"); v != "" {
		cfg.UI.Foreground = v
	}
	if v := os.Getenv("CELLFRAME_BACKGROUND"); v != "" {
		cfg.UI.Background = v
	}
	if v := os.Getenv("CELLFRAME_SELECTION_COLOR"); v != "" {
		cfg.UI.SelectionColor = v
	}
	if v := os.Getenv("CELLFRAME_HIGHLIGHT_COLOR"); v != "" {
		cfg.UI.HighlightColor = v
	}
	if v := os.Getenv("CELLFRAME_BORDER_STYLE"); v != "" {
		cfg.UI.BorderStyle = v
	}
	if v := os.Getenv("CELLFRAME_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("CELLFRAME_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if debug, ok := envBool("CELLFRAME_DEBUG"); ok && debug {
		cfg.Logging.Level = string(logging.LevelDebug)
	}
	if v, ok := os.LookupEnv("CELLFRAME_METRICS_LISTEN"); ok {
		cfg.Metrics.Listen = strings.TrimSpace(v)
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate checks every field and reports the first problem with
// ErrCodeConfigInvalid.
func (c *Config) Validate() error {
	if c.UI.TickInterval <= 0 {
		return invalid("ui.tick_interval must be positive, got %s", c.UI.TickInterval)
	}
	if c.UI.MaxFPS < 0 {
		return invalid("ui.max_fps must not be negative, got %d", c.UI.MaxFPS)
	}
	if _, err := c.UI.Theme(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level: %v", err)
	}
	if listen := strings.TrimSpace(c.Metrics.Listen); listen != "" {
		if _, _, err := net.SplitHostPort(listen); err != nil {
			return invalid("metrics.listen %q: %v", listen, err)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf(format, args...))
}

// Theme resolves the color and border names.
func (u UIConfig) Theme() (Theme, error) {
	var t Theme
	colors := []struct {
		field string
		value string
		out   *backend.Color
	}{
		{"ui.foreground", u.Foreground, new(backend.Color)},
		{"ui.background", u.Background, new(backend.Color)},
		{"ui.selection_color", u.SelectionColor, &t.Selection},
		{"ui.highlight_color", u.HighlightColor, &t.Highlight},
	}
	for _, c := range colors {
		col, err := backend.ParseColor(c.value)
		if err != nil {
			return Theme{}, invalid("%s: %v", c.field, err)
		}
		*c.out = col
	}
	t.Colors = backend.DefaultStyle().Foreground(*colors[0].out).Background(*colors[1].out)

	border, err := runtime.ParseBorderStyle(u.BorderStyle)
	if err != nil {
		return Theme{}, invalid("ui.border_style: %v", err)
	}
	t.Border = border
	return t, nil
}

// LogLevel returns the parsed logging level, or info if it is invalid.
func (l LoggingConfig) LogLevel() logging.Level {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// LogDir returns the log directory with a leading ~ expanded.
func (l LoggingConfig) LogDir() string {
	return expandHomeDir(l.Dir)
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
