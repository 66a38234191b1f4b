package md2blog

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2blog/internal/auditlog"
)

// newSite scaffolds a site under a temp dir and returns its config.
func newSite(t *testing.T) SiteConfig {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "www")
	site := SiteConfig{
		RootDir:     root,
		PostsDir:    filepath.Join(root, "posts"),
		AssetsDir:   filepath.Join(root, "assets"),
		LogDir:      filepath.Join(base, "logs"),
		MarkdownDir: filepath.Join(base, "markdown-posts"),
	}
	if _, err := Scaffold(ScaffoldOptions{Site: site, Title: "My Blog", Tagline: "notes"}); err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}
	return site
}

// addFolder creates a source folder with the given files.
func addFolder(t *testing.T, site SiteConfig, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(site.MarkdownDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for fn, content := range files {
		if err := os.WriteFile(filepath.Join(dir, fn), []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return dir
}

// auditBuffer returns an audit logger writing to the returned buffer.
func auditBuffer() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(auditlog.NewHandler(&buf)), &buf
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func removeFile(path string) error {
	return os.Remove(path)
}
