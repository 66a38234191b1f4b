package fileutil_test

// Notes:
// - WriteFileAtomic Write/Close/Chmod error branches are not tested because
//   triggering disk write failures is platform-specific.
// - CopyAssets skips non-regular entries (symlinks, sockets); only directories
//   are exercised here.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// writeFiles creates files under dir. Keys are relative paths.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsMarkdown - Markdown extension detection
// ---------------------------------------------------------------------------

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "md", in: "post.md", want: true},
		{name: "markdown", in: "post.markdown", want: true},
		{name: "upper case", in: "POST.MD", want: true},
		{name: "image", in: "cat.png", want: false},
		{name: "no extension", in: "README", want: false},
		{name: "md in middle", in: "post.md.bak", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsMarkdown(tt.in); got != tt.want {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Replace-by-rename writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	if err := fileutil.WriteFileAtomic(path, []byte("v1"), fileutil.FilePermissions); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("v2"), fileutil.FilePermissions); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("content = %q, want %q", got, "v2")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "index.html")
	if err := fileutil.WriteFileAtomic(path, []byte("x"), fileutil.FilePermissions); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// ---------------------------------------------------------------------------
// TestCopyAssets - Asset directory population
// ---------------------------------------------------------------------------

func TestCopyAssets(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"post.md":        "# post",
		"cat.png":        "\x89PNG fake",
		"notes.txt":      "notes",
		"sub/nested.png": "nested",
	})
	dst := filepath.Join(t.TempDir(), "assets", "post")

	copied, err := fileutil.CopyAssets(src, dst, fileutil.IsMarkdown)
	if err != nil {
		t.Fatalf("CopyAssets() unexpected error: %v", err)
	}

	sort.Strings(copied)
	if len(copied) != 2 || copied[0] != "cat.png" || copied[1] != "notes.txt" {
		t.Errorf("copied = %v, want [cat.png notes.txt]", copied)
	}

	for _, name := range []string{"post.md", "sub", "nested.png"} {
		if _, err := os.Stat(filepath.Join(dst, name)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s should not be copied", name)
		}
	}

	want, _ := os.ReadFile(filepath.Join(src, "cat.png"))
	got, err := os.ReadFile(filepath.Join(dst, "cat.png"))
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("copy is not byte-identical")
	}
}

func TestCopyAssets_OverwritesAndKeepsModTime(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeFiles(t, src, map[string]string{"cat.png": "new"})
	writeFiles(t, dst, map[string]string{"cat.png": "old", "other.png": "kept"})

	mtime := time.Date(2020, time.May, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(src, "cat.png"), mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if _, err := fileutil.CopyAssets(src, dst, nil); err != nil {
		t.Fatalf("CopyAssets() unexpected error: %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(dst, "cat.png"))
	if string(got) != "new" {
		t.Errorf("cat.png = %q, want overwritten content", got)
	}
	info, err := os.Stat(filepath.Join(dst, "cat.png"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
	if !fileutil.FileExists(filepath.Join(dst, "other.png")) {
		t.Error("unrelated file in destination was removed")
	}
}

func TestCopyAssets_MissingSource(t *testing.T) {
	t.Parallel()

	_, err := fileutil.CopyAssets(filepath.Join(t.TempDir(), "nope"), t.TempDir(), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestRemoveFile / TestRemoveDir - Idempotent deletion
// ---------------------------------------------------------------------------

func TestRemoveFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.html": "x"})
	path := filepath.Join(dir, "a.html")

	removed, err := fileutil.RemoveFile(path)
	if err != nil || !removed {
		t.Fatalf("first RemoveFile() = %v, %v; want true, nil", removed, err)
	}
	removed, err = fileutil.RemoveFile(path)
	if err != nil || removed {
		t.Errorf("second RemoveFile() = %v, %v; want false, nil", removed, err)
	}
}

func TestRemoveDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"slug/a.png": "a", "slug/b.png": "b", "file": "f"})

	removed, err := fileutil.RemoveDir(filepath.Join(root, "slug"))
	if err != nil || !removed {
		t.Fatalf("RemoveDir() = %v, %v; want true, nil", removed, err)
	}
	if fileutil.DirExists(filepath.Join(root, "slug")) {
		t.Error("directory still exists")
	}

	removed, err = fileutil.RemoveDir(filepath.Join(root, "slug"))
	if err != nil || removed {
		t.Errorf("RemoveDir() on missing = %v, %v; want false, nil", removed, err)
	}

	if _, err := fileutil.RemoveDir(filepath.Join(root, "file")); !errors.Is(err, fileutil.ErrNotDirectory) {
		t.Errorf("RemoveDir() on file error = %v, want ErrNotDirectory", err)
	}
}
