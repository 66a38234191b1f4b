package md2blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2blog/internal/feed"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/slug"
)

// RemovalResult describes a removal.
type RemovalResult struct {
	Title         string
	Slug          string
	Found         bool // a preview card existed
	PageRemoved   bool
	AssetsRemoved bool
}

// Remover unpublishes articles.
type Remover struct {
	site SiteConfig
	cfg  settings
}

// NewRemover creates a Remover for site.
func NewRemover(site SiteConfig, opts ...Option) (*Remover, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &Remover{site: site, cfg: newSettings(opts)}, nil
}

// Remove deletes the preview card, the page and the asset directory of the
// article titled title. When no preview card exists nothing is touched and
// Found is false. Missing pages and asset directories are not errors.
//
// The homepage is persisted before files are deleted; a later failure does
// not restore the card.
func (r *Remover) Remove(ctx context.Context, title string) (*RemovalResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &RemovalResult{Title: title, Slug: slug.FromTitle(title)}
	log := r.cfg.logger.With("slug", res.Slug)

	home, err := feed.Load(r.site.HomepagePath(), r.cfg.logger)
	if err != nil {
		return res, err
	}
	if !home.Remove(res.Slug) {
		log.Info("no preview card for title", "title", title)
		return res, nil
	}
	res.Found = true

	if err := home.Save(); err != nil {
		return res, err
	}

	res.PageRemoved, err = fileutil.RemoveFile(r.site.PagePath(res.Slug))
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrRemoval, err)
	}
	if !res.PageRemoved {
		log.Warn("article page already missing")
	}

	res.AssetsRemoved, err = fileutil.RemoveDir(r.site.AssetDir(res.Slug))
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrRemoval, err)
	}
	if !res.AssetsRemoved {
		log.Warn("asset directory already missing")
	}

	r.cfg.audit.Info(fmt.Sprintf("Post %s.html was removed from posts dir and index page.", res.Slug))
	log.Info("article removed")
	return res, nil
}
