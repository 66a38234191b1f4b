package main

import (
	"io"
	"log/slog"

	"github.com/alnah/go-md2blog/internal/auditlog"
)

// newLogger returns the diagnostics logger. Warnings and errors are shown by
// default; --quiet keeps errors only and --verbose adds debug records.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openAudit opens blog.log in dir. When the log cannot be opened the
// failure is logged and records are discarded, so publishing goes on.
func openAudit(dir string, logger *slog.Logger) (audit *slog.Logger, closeFn func()) {
	f, err := auditlog.Open(dir)
	if err != nil {
		logger.Warn("audit log disabled", "dir", dir, "error", err)
		return auditlog.Discard(), func() {}
	}
	return slog.New(auditlog.NewHandler(f)), func() { _ = f.Close() }
}
