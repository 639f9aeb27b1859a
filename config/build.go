package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/formatter"
	"github.com/philipp01105/lvlog/handler"
	"github.com/philipp01105/lvlog/handler/consolehandler"
	"github.com/philipp01105/lvlog/handler/filehandler"
	"github.com/philipp01105/lvlog/handler/multihandler"
	"github.com/philipp01105/lvlog/handler/zaphandler"
	"github.com/philipp01105/lvlog/handler/zerologhandler"
	"github.com/philipp01105/lvlog/logger"
)

// Build creates a logger from cfg, filling in defaults first. Level
// conflicts are returned as the logger reports them (wrapping
// core.ErrConstructionConflict).
func Build(cfg *Config) (*logger.Logger, error) {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h, err := buildHandler(cfg)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(cfg.Options(), h)
	if err != nil {
		return nil, multierr.Append(err, h.Close())
	}
	return l, nil
}

// Options converts the level and field settings to logger.Options.
func (c *Config) Options() logger.Options {
	opts := logger.Options{
		Level:  c.Level,
		Caller: c.Caller,
	}
	if c.LevelValue != nil {
		v := core.Level(*c.LevelValue)
		opts.LevelVal = &v
	}
	if len(c.CustomLevels) > 0 {
		opts.CustomLevels = make(map[string]core.Level, len(c.CustomLevels))
		for label, v := range c.CustomLevels {
			opts.CustomLevels[label] = core.Level(v)
		}
	}

	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts.Fields = append(opts.Fields, logger.String(k, c.Fields[k]))
	}
	return opts
}

func buildHandler(cfg *Config) (handler.Handler, error) {
	var (
		handlers []handler.Handler
		errs     error
	)
	for i, o := range cfg.Outputs {
		h, err := o.handler(cfg.Caller)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("outputs[%d]: %w", i, err))
			continue
		}
		handlers = append(handlers, h)
	}
	if errs != nil {
		for _, h := range handlers {
			errs = multierr.Append(errs, h.Close())
		}
		return nil, errs
	}
	if len(handlers) == 1 {
		return handlers[0], nil
	}
	return multihandler.NewMultiHandler(handlers...), nil
}

func (o Output) handler(caller bool) (handler.Handler, error) {
	switch o.Type {
	case OutputConsole:
		cc := consolehandler.ConsoleConfig{
			Writer:        stream(o.Target),
			Color:         colorMode(o.Color),
			IncludeCaller: caller,
		}
		if o.Format == FormatJSON {
			cc.Formatter = formatter.NewJSONFormatter(formatter.Config{IncludeCaller: caller})
		}
		return consolehandler.NewConsoleHandler(cc), nil
	case OutputFile:
		fc := filehandler.FileConfig{
			Filename:   o.Target,
			MaxSizeMB:  o.Rotation.MaxSizeMB,
			MaxBackups: o.Rotation.MaxBackups,
			MaxAgeDays: o.Rotation.MaxAgeDays,
			Compress:   o.Rotation.Compress,
			LocalTime:  o.Rotation.LocalTime,
		}
		if o.Rotation.Interval != "" {
			d, err := time.ParseDuration(o.Rotation.Interval)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			fc.RotateInterval = d
		}
		if o.Format == FormatText {
			fc.Formatter = formatter.NewTextFormatter(formatter.Config{IncludeCaller: caller})
		} else {
			fc.Formatter = formatter.NewJSONFormatter(formatter.Config{IncludeCaller: caller})
		}
		return filehandler.NewFileHandler(fc)
	case OutputZap:
		return zaphandler.NewWithConfig(zaphandler.Config{
			Writer:  stream(o.Target),
			Console: o.Format == FormatConsole,
		}), nil
	case OutputZerolog:
		return zerologhandler.NewWithConfig(zerologhandler.Config{
			Writer:  stream(o.Target),
			Console: o.Format == FormatConsole,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown output type %q", ErrInvalidConfig, o.Type)
	}
}

func stream(target string) io.Writer {
	if target == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

func colorMode(s string) consolehandler.ColorMode {
	switch s {
	case "always":
		return consolehandler.ColorAlways
	case "never":
		return consolehandler.ColorNever
	default:
		return consolehandler.ColorAuto
	}
}
