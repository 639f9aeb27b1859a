package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation and decoding failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a logger and its outputs.
type Config struct {
	// Level is the initial threshold, a label or a decimal value.
	Level string `yaml:"level" toml:"level"`
	// LevelValue registers Level as a new level at this value.
	LevelValue *int64 `yaml:"level_value" toml:"level_value"`
	// CustomLevels are registered at construction.
	CustomLevels map[string]int64 `yaml:"custom_levels" toml:"custom_levels"`
	// Fields are bound to every entry.
	Fields map[string]string `yaml:"fields" toml:"fields"`
	Caller bool              `yaml:"caller" toml:"caller"`
	// Outputs receive every accepted entry. Empty means one text console
	// output on stdout.
	Outputs []Output `yaml:"outputs" toml:"outputs"`
}

// Output types.
const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputZap     = "zap"
	OutputZerolog = "zerolog"
)

// Output formats. Zap and zerolog use "console" for their human
// readable encoders.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Output is a single destination.
type Output struct {
	Type   string `yaml:"type" toml:"type"`
	Format string `yaml:"format" toml:"format"`
	// Target is stdout or stderr, or the file name for file outputs.
	Target string `yaml:"target" toml:"target"`
	// Color is auto, always or never (console text only).
	Color    string   `yaml:"color" toml:"color"`
	Rotation Rotation `yaml:"rotation" toml:"rotation"`
}

// Rotation controls file outputs.
type Rotation struct {
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
	LocalTime  bool   `yaml:"local_time" toml:"local_time"`
	Interval   string `yaml:"interval" toml:"interval"`
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file on top of
// Default, then normalizes and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".toml":
		format = "toml"
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, filepath.Ext(path))
	}
	return Parse(data, format)
}

// Parse decodes data as "yaml" or "toml" on top of Default.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()

	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &cfg)
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, format, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Level = strings.TrimSpace(c.Level)
	if c.Level == "" {
		c.Level = defaultLevel
	}
	if len(c.Outputs) == 0 {
		c.Outputs = []Output{defaultOutput()}
	}
	for i := range c.Outputs {
		o := &c.Outputs[i]
		o.Type = strings.ToLower(strings.TrimSpace(o.Type))
		o.Format = strings.ToLower(strings.TrimSpace(o.Format))
		o.Color = strings.ToLower(strings.TrimSpace(o.Color))
		o.Target = strings.TrimSpace(o.Target)
		if o.Type == "" {
			o.Type = OutputConsole
		}
		if o.Format == "" {
			o.Format = defaultFormat(o.Type)
		}
		if o.Color == "" {
			o.Color = defaultColor
		}
		if o.Target == "" && o.Type != OutputFile {
			o.Target = defaultTarget
		}
	}
}
