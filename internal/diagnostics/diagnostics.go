// Package diagnostics provides the stderr side channel for advisory
// reports: expression failures that fall back to verbatim output, and
// resolution tracing when debug is enabled.
package diagnostics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// New returns a logger rendering compact single-line records to w.
// With debug enabled, Debug level records are included.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(&Handler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	})
}

// Handler renders records as single lines of the form
// "LEVEL message key=value ...".
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString(r.Level.String())
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	for _, attr := range h.attrs {
		h.writeAttr(buf, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(buf, attr)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *Handler) writeAttr(buf *bytes.Buffer, attr slog.Attr) {
	buf.WriteByte(' ')
	buf.WriteString(h.prefix)
	buf.WriteString(attr.Key)
	buf.WriteByte('=')
	v := attr.Value.Resolve()
	if v.Kind() == slog.KindString {
		s := v.String()
		if strings.ContainsAny(s, " \t\"") {
			buf.WriteString(strconv.Quote(s))
		} else {
			buf.WriteString(s)
		}
		return
	}
	fmt.Fprint(buf, v.Any())
}
