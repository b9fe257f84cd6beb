package pkglog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// ServiceName is attached to every log record.
const ServiceName = "goviz"

// Options controls how InitLogging builds the default logger.
type Options struct {
	// Format is "json" (default) or "text" for a human friendly console output.
	Format string
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// InitLogging configures the default slog logger for the application.
//
// The JSON logger normalizes a few common fields to make logs easier to query
// (for example, "ts" and "severity"). The text logger is meant for local runs.
func InitLogging(opt Options) {
	slog.SetDefault(slog.New(&contextHandler{Handler: newHandler(opt)}))
}

func newHandler(opt Options) slog.Handler {
	out := opt.Output
	if out == nil {
		out = os.Stdout
	}
	level := parseLevel(opt.Level)

	if strings.EqualFold(opt.Format, "text") {
		logger := charmlog.NewWithOptions(out, charmlog.Options{
			ReportTimestamp: true,
			ReportCaller:    true,
			TimeFormat:      "2006-01-02 15:04:05",
			Level:           charmlog.Level(level),
		})
		return logger
	}

	return slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			case slog.SourceKey:
				if src, ok := a.Value.Any().(*slog.Source); ok {
					if strings.Contains(src.File, "/internal/") {
						relPath := filepath.Join("internal", strings.SplitAfter(src.File, "/internal/")[1])
						return slog.Attr{
							Key:   "file",
							Value: slog.StringValue(fmt.Sprintf("%s:%d", relPath, src.Line)),
						}
					}
					return slog.Attr{}
				}
			}
			return a
		},
	})
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" && cID != UnknownCorrelationID {
		r.AddAttrs(slog.String("_cID", cID))
	}
	r.AddAttrs(slog.String("service", ServiceName))

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
