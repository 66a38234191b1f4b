package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testEnv is an Environment writing to buffers, rooted in a temp directory.
type testEnv struct {
	*Environment
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	e := &testEnv{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	e.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: e.stdout,
		Stderr: e.stderr,
		Stdin:  strings.NewReader(""),
		Getwd:  func() (string, error) { return dir, nil },
	}
	return e
}

// run calls runMain with args after the program name.
func (e *testEnv) run(args ...string) int {
	return runMain(context.Background(), append([]string{"md2blog"}, args...), e.Environment)
}

func (e *testEnv) reset() {
	e.stdout.Reset()
	e.stderr.Reset()
}

func (e *testEnv) configPath() string {
	return filepath.Join(e.dir, "blog.yaml")
}

// setupSite runs setup in local mode and fails the test on error.
func (e *testEnv) setupSite(t *testing.T) {
	t.Helper()
	if code := e.run("setup", "--title", "My Blog", "--tagline", "notes", "-q"); code != ExitSuccess {
		t.Fatalf("setup exit = %d, stderr = %s", code, e.stderr)
	}
	e.reset()
}

// addArticle creates a source folder with one markdown file.
func (e *testEnv) addArticle(t *testing.T, folder, markdown string) {
	t.Helper()
	dir := filepath.Join(e.dir, markdownDirName, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte(markdown), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func (e *testEnv) path(parts ...string) string {
	return filepath.Join(append([]string{e.dir}, parts...)...)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
