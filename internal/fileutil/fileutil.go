// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Permissions of published output. The web server must be able to read it.
const (
	DirPermissions  = 0o755
	FilePermissions = 0o644
)

// ErrNotDirectory indicates a path expected to be a directory is something else.
var ErrNotDirectory = errors.New("not a directory")

// markdownExtensions lists the extensions treated as markdown sources.
var markdownExtensions = []string{".md", ".markdown"}

// IsMarkdown returns true if name has a markdown extension (case-insensitive).
func IsMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range markdownExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// WriteFileAtomic writes data to a temp file in the destination directory and
// renames it over path, so readers never observe a half-written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst, overwriting dst, and carries over the source
// modification time.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- caller-provided source path
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FilePermissions) // #nosec G304 -- destination under site root
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyAssets copies every regular file of srcDir into dstDir, creating dstDir
// when absent. Subdirectories and files for which skip returns true are left
// out. Existing files in dstDir are overwritten. Returns the copied names.
func CopyAssets(srcDir, dstDir string, skip func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", srcDir, err)
	}

	if err := os.MkdirAll(dstDir, DirPermissions); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dstDir, err)
	}

	var copied []string
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		if skip != nil && skip(e.Name()) {
			continue
		}
		if err := CopyFile(filepath.Join(srcDir, e.Name()), filepath.Join(dstDir, e.Name())); err != nil {
			return copied, fmt.Errorf("copying %s: %w", e.Name(), err)
		}
		copied = append(copied, e.Name())
	}
	return copied, nil
}

// RemoveFile deletes path. A missing file is not an error; removed reports
// whether something was deleted.
func RemoveFile(path string) (removed bool, err error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveDir deletes every file inside dir, then dir itself. A missing dir is
// not an error; removed reports whether something was deleted.
func RemoveDir(dir string) (removed bool, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, err
	}
	return true, nil
}
