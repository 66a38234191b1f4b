// Package auditlog writes the append-only publication log.
//
// Each record becomes one line:
//
//	01/02/2024 15:04:05 - Post hello.md --> hello-world.html went public in posts dir.
//
// The Handler satisfies slog.Handler so callers log audit events with the same
// API they use for diagnostics. Attributes and groups are dropped: the line
// format carries the message only.
package auditlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-md2blog/internal/dateutil"
)

// FileName is the audit log file created inside the configured log directory.
const FileName = "blog.log"

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Handler formats slog records as audit lines.
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	layout string
	now    func() time.Time
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer) *Handler {
	layout, err := dateutil.Layout(dateutil.AuditFormat)
	if err != nil {
		// AuditFormat is a constant known to parse.
		panic(fmt.Sprintf("auditlog: invalid audit format: %v", err))
	}
	return &Handler{mu: &sync.Mutex{}, w: w, layout: layout, now: time.Now}
}

// WithClock returns a copy of h that stamps records with now when the record
// carries no time of its own.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	c := *h
	c.now = now
	return &c
}

// Enabled reports whether level is recorded. Debug records are dropped.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

// Handle writes one audit line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}
	line := ts.Format(h.layout) + " - " + r.Message + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

// WithAttrs returns h unchanged.
func (h *Handler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

// WithGroup returns h unchanged.
func (h *Handler) WithGroup(_ string) slog.Handler { return h }

// Open creates dir if needed and opens dir/blog.log for appending.
// The caller closes the returned file.
func Open(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions) // #nosec G304 -- path from site config
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return f, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Compile-time interface check.
var _ slog.Handler = (*Handler)(nil)
