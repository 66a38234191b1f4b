package md2blog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// ProcessedMarker prefixes source folders that have been published.
const ProcessedMarker = ".PROCESSED."

// SourceFolder is one unprocessed article folder.
type SourceFolder struct {
	Name     string   // directory name
	Path     string   // absolute path
	Markdown []string // markdown file names, sorted
}

// IsProcessed reports whether a folder name carries the processed marker.
func IsProcessed(name string) bool {
	return strings.Contains(name, ProcessedMarker)
}

// ScanSources lists the unprocessed folders of dir in name order. Regular
// files and processed folders are skipped.
func ScanSources(dir string) ([]SourceFolder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	var folders []SourceFolder
	for _, e := range entries {
		if !e.IsDir() || IsProcessed(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		md, err := markdownFiles(path)
		if err != nil {
			return nil, err
		}
		folders = append(folders, SourceFolder{Name: e.Name(), Path: path, Markdown: md})
	}
	return folders, nil
}

func markdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && fileutil.IsMarkdown(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// MarkProcessed renames the folder to ProcessedMarker + name and returns the
// new path. A folder already carrying the marker is left alone.
func MarkProcessed(f SourceFolder) (string, error) {
	if IsProcessed(f.Name) {
		return f.Path, nil
	}
	target := filepath.Join(filepath.Dir(f.Path), ProcessedMarker+f.Name)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s already exists", ErrMarkProcessed, target)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", ErrMarkProcessed, err)
	}
	if err := os.Rename(f.Path, target); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarkProcessed, err)
	}
	return target, nil
}
