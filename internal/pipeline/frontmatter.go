package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatter indicates a front matter block that could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter holds the recognized front matter keys. Other keys are ignored.
type FrontMatter struct {
	Draft bool `yaml:"draft" toml:"draft"`
}

// SplitFrontMatter separates an optional leading front matter block from the
// markdown body. A block counts only when it decodes as a non-empty mapping;
// anything else, such as an article opening with a "---" rule, is returned
// whole as body.
func SplitFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var block map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &block)
	if err != nil || len(block) == 0 {
		return FrontMatter{}, source, nil
	}

	var meta FrontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return meta, body, nil
}
