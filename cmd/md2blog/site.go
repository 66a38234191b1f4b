package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/alecthomas/chroma/v2/styles"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
)

// ErrUnknownHighlightStyle indicates a chroma style that does not exist.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// siteContext is everything a site command needs once flags, environment
// and config file are merged.
type siteContext struct {
	cfg     *config.Config
	env     *envConfig
	logger  *slog.Logger
	cfgName string
}

// loadSite resolves the config name, reads the dotenv file and the config,
// and applies environment overrides. The result is validated.
func loadSite(common commonFlags, env *Environment) (*siteContext, error) {
	logger := newLogger(env.Stderr, common.quiet, common.verbose)

	envFile, err := resolvePath(env, common.envFile)
	if err != nil {
		return nil, err
	}
	dotenv, err := readDotEnv(envFile)
	if err != nil {
		return nil, err
	}
	envCfg := loadEnvConfig(dotenv)
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr, dotenv)
	}

	name := configName(common.config, envCfg)
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	logger.Debug("config loaded", "config", name, "root", cfg.RootDir, "markdown", cfg.MarkdownDir)
	return &siteContext{cfg: cfg, env: envCfg, logger: logger, cfgName: name}, nil
}

// configName picks the config to load: flag, then MD2BLOG_CONFIG, then the
// default name.
func configName(flagValue string, env *envConfig) string {
	switch {
	case flagValue != "":
		return flagValue
	case env.ConfigPath != "":
		return env.ConfigPath
	default:
		return config.DefaultConfigName
	}
}

// applyRenderFlags merges rendering flags over cfg. CLI values win.
func applyRenderFlags(f renderFlags, cfg *config.Config) error {
	if f.highlightSet {
		cfg.Markdown.Highlight = f.highlight
	}
	if f.highlightStyle != "" {
		cfg.Markdown.Style = f.highlightStyle
		cfg.Markdown.Highlight = true
	}
	if f.previewParagraphs != 0 {
		cfg.Feed.PreviewParagraphs = f.previewParagraphs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Markdown.Highlight {
		return validateHighlightStyle(cfg.Markdown.Style)
	}
	return nil
}

// validateHighlightStyle checks name against the chroma registry. Empty
// selects the chroma default.
func validateHighlightStyle(name string) error {
	if name == "" || slices.Contains(styles.Names(), name) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
}

// siteConfig converts the persisted layout into the library's SiteConfig.
func siteConfig(cfg *config.Config) md2blog.SiteConfig {
	return md2blog.SiteConfig{
		RootDir:     cfg.RootDir,
		PostsDir:    cfg.PostsDir,
		AssetsDir:   cfg.AssetsDir,
		LogDir:      cfg.LogDir,
		MarkdownDir: cfg.MarkdownDir,
	}
}

// siteOptions returns the library options for a loaded site.
func siteOptions(sc *siteContext, audit *slog.Logger) []md2blog.Option {
	opts := []md2blog.Option{
		md2blog.WithLogger(sc.logger),
		md2blog.WithAuditLogger(audit),
		md2blog.WithPreviewParagraphs(sc.cfg.PreviewParagraphCount()),
	}
	if sc.cfg.Markdown.Highlight {
		opts = append(opts, md2blog.WithHighlighting(sc.cfg.Markdown.Style))
	}
	return opts
}

// resolvePath makes p absolute against the environment's working directory.
func resolvePath(env *Environment, p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	cwd, err := env.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return filepath.Join(cwd, p), nil
}
