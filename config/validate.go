package config

import (
	"fmt"
	"time"
)

// Validate ensures the configuration is usable. Level conflicts are not
// checked here; they surface when the logger is built.
func (c *Config) Validate() error {
	if c.Level == "" {
		return invalid("level must be set")
	}
	for label := range c.CustomLevels {
		if label == "" {
			return invalid("custom_levels: empty label")
		}
	}
	if len(c.Outputs) == 0 {
		return invalid("at least one output is required")
	}
	for i, o := range c.Outputs {
		if err := o.validate(); err != nil {
			return fmt.Errorf("outputs[%d]: %w", i, err)
		}
	}
	return nil
}

func (o Output) validate() error {
	switch o.Type {
	case OutputConsole:
		if o.Format != FormatText && o.Format != FormatJSON {
			return invalid("console format must be text or json, got %q", o.Format)
		}
		if err := validateStream(o.Target); err != nil {
			return err
		}
		switch o.Color {
		case "auto", "always", "never":
		default:
			return invalid("color must be auto, always or never, got %q", o.Color)
		}
	case OutputFile:
		if o.Target == "" {
			return invalid("file output needs a target")
		}
		if o.Format != FormatText && o.Format != FormatJSON {
			return invalid("file format must be text or json, got %q", o.Format)
		}
		if o.Rotation.MaxSizeMB < 0 || o.Rotation.MaxBackups < 0 || o.Rotation.MaxAgeDays < 0 {
			return invalid("rotation limits must not be negative")
		}
		if o.Rotation.Interval != "" {
			d, err := time.ParseDuration(o.Rotation.Interval)
			if err != nil || d < 0 {
				return invalid("rotation.interval %q is not a valid duration", o.Rotation.Interval)
			}
		}
	case OutputZap, OutputZerolog:
		if o.Format != FormatJSON && o.Format != FormatConsole {
			return invalid("%s format must be json or console, got %q", o.Type, o.Format)
		}
		if err := validateStream(o.Target); err != nil {
			return err
		}
	default:
		return invalid("unknown output type %q", o.Type)
	}
	return nil
}

func validateStream(target string) error {
	if target != "stdout" && target != "stderr" {
		return invalid("target must be stdout or stderr, got %q", target)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
