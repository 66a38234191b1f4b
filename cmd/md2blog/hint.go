package main

import (
	"errors"
	"os"

	"github.com/alecthomas/chroma/v2/styles"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if p, perr := config.UserConfigPath(config.DefaultConfigName); perr == nil {
			searched = append(searched, p)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, md2blog.ErrMalformedArticle):
		return hints.ForMalformedArticle()
	case errors.Is(err, md2blog.ErrTemplateContract):
		return hints.ForTemplateContract()
	case errors.Is(err, ErrUnknownHighlightStyle):
		return hints.ForStyleNotFound(styles.Names())
	case errors.Is(err, os.ErrPermission):
		return hints.ForPermission()
	default:
		return ""
	}
}
