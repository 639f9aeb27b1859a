package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipp01105/lvlog/config"
	"github.com/philipp01105/lvlog/core"
	"github.com/philipp01105/lvlog/formatter"
	"github.com/philipp01105/lvlog/handler/consolehandler"
	"github.com/philipp01105/lvlog/logger"
)

type commandContext struct {
	configPath string
	level      string
	adds       []string
	format     string
}

// diagnostics returns the logger the CLI reports its own warnings on.
func diagnostics(w io.Writer) *logger.Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: w,
		Color:  consolehandler.ColorNever,
	})
	l, err := logger.New(logger.Options{Level: core.WarnLabel}, h)
	if err != nil {
		panic(err)
	}
	return l
}

// buildLogger constructs the logger described by the flags. Without
// --config it writes to the command's output so results can be piped.
func (c *commandContext) buildLogger(cmd *cobra.Command) (*logger.Logger, error) {
	l, err := c.newLogger(cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	diag := diagnostics(cmd.ErrOrStderr())
	for _, spec := range c.adds {
		label, value, err := parseLevelSpec(spec)
		if err != nil {
			l.Close()
			return nil, err
		}
		if !l.AddLevel(label, value) {
			diag.Warn("level rejected, label or value already registered",
				logger.String("label", label),
				logger.String("value", value.String()),
			)
		}
	}

	if c.level != "" {
		if err := l.SetLevel(c.level); err != nil {
			l.Close()
			return nil, err
		}
	}
	return l, nil
}

func (c *commandContext) newLogger(out io.Writer) (*logger.Logger, error) {
	if c.configPath == "" {
		if c.format != "text" && c.format != "json" {
			return nil, fmt.Errorf("invalid --format %q, want text or json", c.format)
		}
		d := config.Default()
		return logger.New(d.Options(), c.stdoutHandler(out))
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	return config.Build(cfg)
}

func (c *commandContext) stdoutHandler(w io.Writer) *consolehandler.ConsoleHandler {
	cc := consolehandler.ConsoleConfig{Writer: w}
	if c.format == "json" {
		cc.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
	return consolehandler.NewConsoleHandler(cc)
}

// parseLevelSpec splits "label=value". "Infinity" is accepted so that a
// request for the silent value is reported as a rejection, not a typo.
func parseLevelSpec(spec string) (string, core.Level, error) {
	label, raw, ok := strings.Cut(spec, "=")
	label = strings.TrimSpace(label)
	raw = strings.TrimSpace(raw)
	if !ok || label == "" || raw == "" {
		return "", 0, fmt.Errorf("invalid level %q, want label=value", spec)
	}
	if strings.EqualFold(raw, "infinity") {
		return label, core.SilentLevel, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid level value in %q: %w", spec, err)
	}
	return label, core.Level(v), nil
}

// parseFields turns key=value pairs into string fields.
func parseFields(pairs []string) ([]core.Field, error) {
	fields := make([]core.Field, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, want key=value", p)
		}
		fields = append(fields, logger.String(k, v))
	}
	return fields, nil
}
