package main

import (
	"errors"
	"os"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/config"
)

// Exit codes for md2blog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Everything published, removed or created
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or site layout
	ExitIO      = 3 // Unreadable or unwritable site files
	ExitFolders = 4 // Run completed but some folders stay unprocessed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Folder failures (exit 4). Checked first: the joined folder errors
	// may carry I/O causes of their own.
	if errors.Is(err, md2blog.ErrFoldersFailed) {
		return ExitFolders
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownHighlightStyle) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, md2blog.ErrInvalidSite) ||
		errors.Is(err, md2blog.ErrEmptyTitle) ||
		errors.Is(err, md2blog.ErrHomepageExists) ||
		errors.Is(err, md2blog.ErrTemplateContract) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2blog.ErrHomepageLoad) ||
		errors.Is(err, md2blog.ErrHomepagePersist) ||
		errors.Is(err, md2blog.ErrSourceRead) ||
		errors.Is(err, md2blog.ErrRemoval) ||
		errors.Is(err, md2blog.ErrScaffold) {
		return ExitIO
	}

	return ExitGeneral
}
