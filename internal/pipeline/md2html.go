package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// ArticleClass is the class of the element wrapping a rendered article.
const ArticleClass = "article"

// MarkdownRenderer abstracts Markdown to article fragment conversion.
type MarkdownRenderer interface {
	Render(ctx context.Context, source []byte) (*html.Node, error)
}

// RendererOption configures a GoldmarkRenderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	highlight bool
	style     string
}

// WithHighlighting turns fenced code into chroma class-based markup.
// An empty style keeps the chroma default.
func WithHighlighting(style string) RendererOption {
	return func(c *rendererConfig) {
		c.highlight = true
		c.style = style
	}
}

// GoldmarkRenderer converts Markdown to an article fragment using goldmark.
// Raw HTML in the source is not passed through.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer. Without options it renders
// CommonMark with fenced code as <pre><code class="language-x">.
func NewGoldmarkRenderer(opts ...RendererOption) *GoldmarkRenderer {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var gmOpts []goldmark.Option
	if cfg.highlight {
		hlOpts := []highlighting.Option{
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // styled by the site stylesheet
			),
		}
		if cfg.style != "" {
			hlOpts = append(hlOpts, highlighting.WithStyle(cfg.style))
		}
		gmOpts = append(gmOpts, goldmark.WithExtensions(highlighting.NewHighlighting(hlOpts...)))
	}

	return &GoldmarkRenderer{md: goldmark.New(gmOpts...)}
}

// Render converts Markdown to a parentless <div class="article"> holding the
// rendered fragment. A leading front matter block must be stripped first.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (r *GoldmarkRenderer) Render(ctx context.Context, source []byte) (*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		root *html.Node
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert(source, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		nodes, err := parseFragment(buf.String())
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		root := newElement(atom.Div, "class", ArticleClass)
		for _, n := range nodes {
			root.AppendChild(n)
		}
		done <- result{root: root}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.root, res.err
	}
}

// Compile-time interface check.
var _ MarkdownRenderer = (*GoldmarkRenderer)(nil)
