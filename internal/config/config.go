package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
	ErrConfigTooLarge  = errors.New("config file too large")
)

// DefaultConfigName is searched for when no config is given.
const DefaultConfigName = "blog"

// appDir is the directory under the user config dir searched for configs.
const appDir = "md2blog"

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Preview paragraph bounds.
const (
	DefaultPreviewParagraphs = 4
	MaxPreviewParagraphs     = 20
)

// MaxStyleLength bounds the chroma style name.
const MaxStyleLength = 50

// Config is the persisted site layout. Every path is absolute.
type Config struct {
	RootDir     string         `yaml:"rootDir"`     // Site root, holds index.html
	PostsDir    string         `yaml:"postsDir"`    // Article pages
	AssetsDir   string         `yaml:"assetsDir"`   // Per-article asset directories
	LogDir      string         `yaml:"logDir"`      // blog.log
	MarkdownDir string         `yaml:"markdownDir"` // Source article folders
	Markdown    MarkdownConfig `yaml:"markdown,omitempty"`
	Feed        FeedConfig     `yaml:"feed,omitempty"`
}

// MarkdownConfig defines rendering options.
type MarkdownConfig struct {
	Highlight bool   `yaml:"highlight,omitempty"` // chroma classes on fenced code
	Style     string `yaml:"style,omitempty"`     // chroma style name (empty = library default)
}

// FeedConfig defines homepage preview options.
type FeedConfig struct {
	PreviewParagraphs int `yaml:"previewParagraphs,omitempty"` // 0 = default (4)
}

// NewLayout returns the conventional layout: posts and assets under root.
func NewLayout(root, logDir, markdownDir string) *Config {
	return &Config{
		RootDir:     root,
		PostsDir:    filepath.Join(root, "posts"),
		AssetsDir:   filepath.Join(root, "assets"),
		LogDir:      logDir,
		MarkdownDir: markdownDir,
	}
}

// PreviewParagraphCount returns the configured count or the default.
func (c *Config) PreviewParagraphCount() int {
	if c.Feed.PreviewParagraphs == 0 {
		return DefaultPreviewParagraphs
	}
	return c.Feed.PreviewParagraphs
}

// Validate checks that every path is set and absolute, and that optional
// fields are in range.
func (c *Config) Validate() error {
	paths := []struct {
		field string
		value string
	}{
		{"rootDir", c.RootDir},
		{"postsDir", c.PostsDir},
		{"assetsDir", c.AssetsDir},
		{"logDir", c.LogDir},
		{"markdownDir", c.MarkdownDir},
	}
	for _, p := range paths {
		if p.value == "" {
			return fmt.Errorf("%w: %s is required", ErrConfigInvalid, p.field)
		}
		if !filepath.IsAbs(p.value) {
			return fmt.Errorf("%w: %s must be an absolute path, got %q", ErrConfigInvalid, p.field, p.value)
		}
	}

	if len(c.Markdown.Style) > MaxStyleLength {
		return fmt.Errorf("%w: markdown.style exceeds %d chars", ErrConfigInvalid, MaxStyleLength)
	}
	if n := c.Feed.PreviewParagraphs; n < 0 || n > MaxPreviewParagraphs {
		return fmt.Errorf("%w: feed.previewParagraphs must be between 0 and %d, got %d", ErrConfigInvalid, MaxPreviewParagraphs, n)
	}

	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns ErrConfigNotFound if no file exists (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrConfigParse)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig validates cfg and writes it to path as YAML.
func SaveConfig(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// UserConfigPath returns where a named config lives in the user config dir.
func UserConfigPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name+".yaml"), nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/md2blog/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
