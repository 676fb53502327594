package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// textHandler is a minimal [slog.Handler] for [FormatText]. This module's
// go.mod carries no console-logging library (charm.land/log/v2 is not a
// dependency), so FormatText is implemented directly against the standard
// library's documented [slog.Handler] interface. It differs from FormatLogfmt (slog.NewTextHandler)
// by leaving attribute values unquoted even when they contain spaces,
// favoring readability over unambiguous re-parsing.
type textHandler struct {
	w           io.Writer
	mu          *sync.Mutex
	level       slog.Level
	attrs       string
	groupPrefix string
}

func newTextHandler(w io.Writer, level slog.Level) *textHandler {
	return &textHandler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
	}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)

	if h.attrs != "" {
		b.WriteByte(' ')
		b.WriteString(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		writeTextAttr(&b, h.groupPrefix, a)

		return true
	})

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write([]byte(b.String()))

	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h

	var b strings.Builder

	b.WriteString(h.attrs)

	for _, a := range attrs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		writeTextAttr(&b, h.groupPrefix, a)
	}

	nh.attrs = b.String()

	return &nh
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	nh := *h

	if nh.groupPrefix == "" {
		nh.groupPrefix = name
	} else {
		nh.groupPrefix += "." + name
	}

	return &nh
}

func writeTextAttr(b *strings.Builder, prefix string, a slog.Attr) {
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}
