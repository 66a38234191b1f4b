package md2blog

import (
	"errors"

	"github.com/alnah/go-md2blog/internal/feed"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidSite    = errors.New("invalid site config")
	ErrSourceRead     = errors.New("failed to read markdown source")
	ErrAssetCopy      = errors.New("failed to copy article assets")
	ErrPageWrite      = errors.New("failed to write article page")
	ErrMarkProcessed  = errors.New("failed to mark folder processed")
	ErrFoldersFailed  = errors.New("some folders failed to publish")
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrRemoval        = errors.New("failed to remove article files")
	ErrHomepageExists = errors.New("homepage already exists")
	ErrScaffold       = errors.New("failed to scaffold site")

	// Re-exported from internal packages so callers can match them.
	ErrMalformedArticle = pipeline.ErrMalformedArticle
	ErrFrontMatter      = pipeline.ErrFrontMatter
	ErrHTMLConversion   = pipeline.ErrHTMLConversion
	ErrTemplateContract = pipeline.ErrTemplateContract
	ErrHomepageLoad     = feed.ErrHomepageLoad
	ErrHomepagePersist  = feed.ErrHomepagePersist
)
