package md2blog

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-md2blog/internal/feed"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// SiteConfig holds the resolved directories of one site. Every path is
// absolute.
type SiteConfig struct {
	RootDir     string // holds index.html
	PostsDir    string // article pages
	AssetsDir   string // per-article asset directories and styles.css
	LogDir      string // blog.log
	MarkdownDir string // source folders
}

// Validate checks that every directory is set and absolute.
func (c SiteConfig) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"root", c.RootDir},
		{"posts", c.PostsDir},
		{"assets", c.AssetsDir},
		{"log", c.LogDir},
		{"markdown", c.MarkdownDir},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s directory is required", ErrInvalidSite, f.name)
		}
		if !filepath.IsAbs(f.value) {
			return fmt.Errorf("%w: %s directory must be absolute, got %q", ErrInvalidSite, f.name, f.value)
		}
	}
	return nil
}

// HomepagePath returns <root>/index.html.
func (c SiteConfig) HomepagePath() string {
	return filepath.Join(c.RootDir, feed.FileName)
}

// PagePath returns <posts>/<slug>.html.
func (c SiteConfig) PagePath(slug string) string {
	return filepath.Join(c.PostsDir, slug+".html")
}

// AssetDir returns <assets>/<slug>.
func (c SiteConfig) AssetDir(slug string) string {
	return filepath.Join(c.AssetsDir, slug)
}

// Option configures a Publisher or Remover.
type Option func(*settings)

type settings struct {
	logger            *slog.Logger
	audit             *slog.Logger
	renderer          pipeline.MarkdownRenderer
	rendererOpts      []pipeline.RendererOption
	previewParagraphs int
}

func newSettings(opts []Option) settings {
	s := settings{previewParagraphs: pipeline.DefaultPreviewParagraphs}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.audit == nil {
		s.audit = slog.New(slog.DiscardHandler)
	}
	if s.renderer == nil {
		s.renderer = pipeline.NewGoldmarkRenderer(s.rendererOpts...)
	}
	return s
}

// WithLogger sets the diagnostics logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithAuditLogger sets the logger receiving one record per publication or
// removal. Nil discards.
func WithAuditLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.audit = l
	}
}

// WithHighlighting renders fenced code with chroma classes in the given
// style. An empty style keeps the chroma default.
func WithHighlighting(style string) Option {
	return func(s *settings) {
		s.rendererOpts = append(s.rendererOpts, pipeline.WithHighlighting(style))
	}
}

// WithPreviewParagraphs sets how many paragraphs preview cards keep.
// Values below 1 keep the default of 4.
func WithPreviewParagraphs(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.previewParagraphs = n
		}
	}
}

// WithRenderer replaces the markdown renderer. It takes precedence over
// WithHighlighting.
func WithRenderer(r pipeline.MarkdownRenderer) Option {
	return func(s *settings) {
		s.renderer = r
	}
}
