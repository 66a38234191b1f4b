package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validConfig returns a config whose paths live under a temp dir.
func validConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	return NewLayout(filepath.Join(root, "www"), filepath.Join(root, "log"), filepath.Join(root, "md"))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestNewLayout - Conventional directory layout
// ---------------------------------------------------------------------------

func TestNewLayout(t *testing.T) {
	t.Parallel()

	cfg := NewLayout("/var/www/html", "/var/log/blog", "/srv/md")

	if cfg.PostsDir != filepath.Join("/var/www/html", "posts") {
		t.Errorf("PostsDir = %q", cfg.PostsDir)
	}
	if cfg.AssetsDir != filepath.Join("/var/www/html", "assets") {
		t.Errorf("AssetsDir = %q", cfg.AssetsDir)
	}
	if cfg.LogDir != "/var/log/blog" || cfg.MarkdownDir != "/srv/md" {
		t.Errorf("LogDir/MarkdownDir = %q/%q", cfg.LogDir, cfg.MarkdownDir)
	}
	if cfg.PreviewParagraphCount() != DefaultPreviewParagraphs {
		t.Errorf("PreviewParagraphCount() = %d, want %d", cfg.PreviewParagraphCount(), DefaultPreviewParagraphs)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field validation
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errPart string
	}{
		{
			name:    "layout is valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing root",
			mutate:  func(c *Config) { c.RootDir = "" },
			wantErr: true,
			errPart: "rootDir is required",
		},
		{
			name:    "relative posts dir",
			mutate:  func(c *Config) { c.PostsDir = "posts" },
			wantErr: true,
			errPart: "postsDir must be an absolute path",
		},
		{
			name:    "missing markdown dir",
			mutate:  func(c *Config) { c.MarkdownDir = "" },
			wantErr: true,
			errPart: "markdownDir",
		},
		{
			name:    "style too long",
			mutate:  func(c *Config) { c.Markdown.Style = strings.Repeat("x", MaxStyleLength+1) },
			wantErr: true,
			errPart: "markdown.style",
		},
		{
			name:    "negative preview paragraphs",
			mutate:  func(c *Config) { c.Feed.PreviewParagraphs = -1 },
			wantErr: true,
			errPart: "previewParagraphs",
		},
		{
			name:    "preview paragraphs at max",
			mutate:  func(c *Config) { c.Feed.PreviewParagraphs = MaxPreviewParagraphs },
			wantErr: false,
		},
		{
			name:    "preview paragraphs over max",
			mutate:  func(c *Config) { c.Feed.PreviewParagraphs = MaxPreviewParagraphs + 1 },
			wantErr: true,
			errPart: "previewParagraphs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("error = %v, want ErrConfigInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errPart)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Loading from path or name
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, `rootDir: /var/www/html
postsDir: /var/www/html/posts
assetsDir: /var/www/html/assets
logDir: /var/log/md2blog
markdownDir: /srv/blog/md
markdown:
  highlight: true
  style: monokai
feed:
  previewParagraphs: 2
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.RootDir != "/var/www/html" {
			t.Errorf("RootDir = %q", cfg.RootDir)
		}
		if cfg.MarkdownDir != "/srv/blog/md" {
			t.Errorf("MarkdownDir = %q", cfg.MarkdownDir)
		}
		if !cfg.Markdown.Highlight || cfg.Markdown.Style != "monokai" {
			t.Errorf("Markdown = %+v", cfg.Markdown)
		}
		if cfg.PreviewParagraphCount() != 2 {
			t.Errorf("PreviewParagraphCount() = %d, want 2", cfg.PreviewParagraphCount())
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/blog.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "rootDir: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, "rootDir: /a\nunknownField: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("relative path in file returns ErrConfigInvalid", func(t *testing.T) {
		path := writeConfig(t, `rootDir: www
postsDir: /a/posts
assetsDir: /a/assets
logDir: /a/log
markdownDir: /a/md
`)
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigInvalid) {
			t.Errorf("error = %v, want ErrConfigInvalid", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		_, err := LoadConfig("no-such-config-name-md2blog")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name-md2blog.yaml") {
			t.Errorf("error %q should list tried paths", err.Error())
		}
	})
}

func TestParse_TooLarge(t *testing.T) {
	t.Parallel()

	data := make([]byte, MaxConfigSize+1)
	if _, err := Parse(data); !errors.Is(err, ErrConfigTooLarge) {
		t.Errorf("error = %v, want ErrConfigTooLarge", err)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	if _, err := Parse(nil); !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}

// ---------------------------------------------------------------------------
// TestSaveConfig - Round trip through disk
// ---------------------------------------------------------------------------

func TestSaveConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Markdown.Highlight = true
	cfg.Feed.PreviewParagraphs = 3
	path := filepath.Join(t.TempDir(), "nested", "blog.yaml")

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("loaded = %+v, want %+v", got, cfg)
	}
}

func TestSaveConfig_Invalid(t *testing.T) {
	t.Parallel()

	cfg := &Config{RootDir: "relative"}
	path := filepath.Join(t.TempDir(), "blog.yaml")
	if err := SaveConfig(path, cfg); !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("error = %v, want ErrConfigInvalid", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("invalid config was written")
	}
}
