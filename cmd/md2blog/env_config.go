package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-md2blog/internal/config"
)

// envPrefix marks the variables read by md2blog.
const envPrefix = "MD2BLOG_"

// envConfig holds configuration from environment variables and the dotenv
// file. Process variables win over dotenv entries.
type envConfig struct {
	ConfigPath string // MD2BLOG_CONFIG: config file name or path

	// Directory overrides
	RootDir     string // MD2BLOG_ROOT_DIR
	PostsDir    string // MD2BLOG_POSTS_DIR
	AssetsDir   string // MD2BLOG_ASSETS_DIR
	LogDir      string // MD2BLOG_LOG_DIR
	MarkdownDir string // MD2BLOG_MARKDOWN_DIR

	// Rendering
	Highlight         *bool  // MD2BLOG_HIGHLIGHT: true/false
	HighlightStyle    string // MD2BLOG_HIGHLIGHT_STYLE: chroma style
	PreviewParagraphs int    // MD2BLOG_PREVIEW_PARAGRAPHS: paragraphs per preview

	Debounce time.Duration // MD2BLOG_WATCH_DEBOUNCE: watch quiet period
}

// knownEnvVars lists valid MD2BLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2BLOG_CONFIG":             true,
	"MD2BLOG_ROOT_DIR":           true,
	"MD2BLOG_POSTS_DIR":          true,
	"MD2BLOG_ASSETS_DIR":         true,
	"MD2BLOG_LOG_DIR":            true,
	"MD2BLOG_MARKDOWN_DIR":       true,
	"MD2BLOG_HIGHLIGHT":          true,
	"MD2BLOG_HIGHLIGHT_STYLE":    true,
	"MD2BLOG_PREVIEW_PARAGRAPHS": true,
	"MD2BLOG_WATCH_DEBOUNCE":     true,
}

// readDotEnv reads a dotenv file without touching the process environment.
// A missing file yields no entries.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrUsage, path, err)
	}
	return vars, nil
}

// loadEnvConfig reads MD2BLOG_* values from the process environment, then
// from dotenv. Invalid numbers and durations are ignored.
func loadEnvConfig(dotenv map[string]string) *envConfig {
	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	cfg := &envConfig{
		ConfigPath:     get("MD2BLOG_CONFIG"),
		RootDir:        get("MD2BLOG_ROOT_DIR"),
		PostsDir:       get("MD2BLOG_POSTS_DIR"),
		AssetsDir:      get("MD2BLOG_ASSETS_DIR"),
		LogDir:         get("MD2BLOG_LOG_DIR"),
		MarkdownDir:    get("MD2BLOG_MARKDOWN_DIR"),
		HighlightStyle: get("MD2BLOG_HIGHLIGHT_STYLE"),
	}

	if v := get("MD2BLOG_HIGHLIGHT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Highlight = &b
		}
	}
	if v := get("MD2BLOG_PREVIEW_PARAGRAPHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PreviewParagraphs = n
		}
	}
	if v := get("MD2BLOG_WATCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Debounce = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2BLOG_* variables in
// the environment or the dotenv file.
func warnUnknownEnvVars(w io.Writer, dotenv map[string]string) {
	seen := map[string]bool{}
	for _, env := range os.Environ() {
		seen[strings.SplitN(env, "=", 2)[0]] = true
	}
	for name := range dotenv {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment values over the config file.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via applyRenderFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	overrides := []struct {
		value  string
		target *string
	}{
		{env.RootDir, &cfg.RootDir},
		{env.PostsDir, &cfg.PostsDir},
		{env.AssetsDir, &cfg.AssetsDir},
		{env.LogDir, &cfg.LogDir},
		{env.MarkdownDir, &cfg.MarkdownDir},
		{env.HighlightStyle, &cfg.Markdown.Style},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}

	if env.Highlight != nil {
		cfg.Markdown.Highlight = *env.Highlight
	}
	if env.PreviewParagraphs > 0 {
		cfg.Feed.PreviewParagraphs = env.PreviewParagraphs
	}
}
