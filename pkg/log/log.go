package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
)

// ansiEscape matches CSI escape sequences such as color codes.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// plainHandler wraps an slog.Handler and strips escape sequences from the
// message and from string attributes.
type plainHandler struct {
	handler slog.Handler
}

// NewPlainHandler wraps handler. A nil handler uses slog.Default().Handler().
func NewPlainHandler(handler slog.Handler) slog.Handler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &plainHandler{handler: handler}
}

func (h *plainHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *plainHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, StripANSI(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(stripAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clean)
}

func (h *plainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = stripAttr(a)
	}
	return &plainHandler{handler: h.handler.WithAttrs(cleaned)}
}

func (h *plainHandler) WithGroup(name string) slog.Handler {
	return &plainHandler{handler: h.handler.WithGroup(name)}
}

func stripAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, StripANSI(v.String()))
	case slog.KindGroup:
		group := v.Group()
		cleaned := make([]any, len(group))
		for i, g := range group {
			cleaned[i] = stripAttr(g)
		}
		return slog.Group(a.Key, cleaned...)
	default:
		return slog.Attr{Key: a.Key, Value: v}
	}
}

// Level maps the verbosity flags to a minimum level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// New creates a text logger writing to w.
func New(w io.Writer, verbose, quiet bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: Level(verbose, quiet),
	}
	return slog.New(NewPlainHandler(slog.NewTextHandler(w, opts)))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
