package md2blog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-md2blog/internal/feed"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
	"github.com/alnah/go-md2blog/internal/slug"
)

// FolderStatus is the outcome of one source folder.
type FolderStatus int

const (
	// StatusPublished means every article went public and the folder was marked.
	StatusPublished FolderStatus = iota
	// StatusSkipped means the folder was left alone on purpose (draft, no markdown).
	StatusSkipped
	// StatusFailed means the folder stays unprocessed because of an error.
	StatusFailed
)

// String implements fmt.Stringer.
func (s FolderStatus) String() string {
	switch s {
	case StatusPublished:
		return "published"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// ArticleResult describes one published article.
type ArticleResult struct {
	Source   string // markdown file name
	Title    string
	Slug     string
	PagePath string
	Updated  bool              // an article with the same slug existed
	Preview  feed.UpsertResult // what happened on the homepage
}

// FolderResult describes one source folder.
type FolderResult struct {
	Name     string
	Status   FolderStatus
	Reason   string // why a folder was skipped
	Articles []ArticleResult
	Err      error // set when Status is StatusFailed
}

// PublishReport summarizes a publish run in folder order.
type PublishReport struct {
	Folders []FolderResult
}

// Count returns how many folders ended with status s.
func (r *PublishReport) Count(s FolderStatus) int {
	n := 0
	for _, f := range r.Folders {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Err joins the folder errors under ErrFoldersFailed, or returns nil when no
// folder failed.
func (r *PublishReport) Err() error {
	var errs []error
	for _, f := range r.Folders {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, f.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrFoldersFailed, errors.Join(errs...))
}

// Publisher publishes pending source folders.
type Publisher struct {
	site SiteConfig
	cfg  settings
}

// NewPublisher creates a Publisher for site.
func NewPublisher(site SiteConfig, opts ...Option) (*Publisher, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &Publisher{site: site, cfg: newSettings(opts)}, nil
}

// Run publishes every unprocessed folder of the markdown directory.
//
// Folder failures are recorded in the report and the run goes on. Failing
// to load or persist the homepage stops the run and is returned together
// with the report so far. Cancellation is checked between folders.
func (p *Publisher) Run(ctx context.Context) (*PublishReport, error) {
	report := &PublishReport{}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	home, err := feed.Load(p.site.HomepagePath(), p.cfg.logger)
	if err != nil {
		return report, err
	}

	folders, err := ScanSources(p.site.MarkdownDir)
	if err != nil {
		return report, err
	}

	for _, f := range folders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := p.publishFolder(ctx, home, f)
		report.Folders = append(report.Folders, res)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// prepared is an article rendered and validated before any write.
type prepared struct {
	source  string
	article *pipeline.Article
}

// publishFolder publishes one folder. The returned error is fatal to the run;
// folder-level failures are reported through the result only.
func (p *Publisher) publishFolder(ctx context.Context, home *feed.Homepage, f SourceFolder) (FolderResult, error) {
	res := FolderResult{Name: f.Name}
	log := p.cfg.logger.With("folder", f.Name)

	if len(f.Markdown) == 0 {
		res.Status, res.Reason = StatusSkipped, "no markdown file"
		log.Info("skipping folder", "reason", res.Reason)
		return res, nil
	}

	articles, reason, err := p.prepare(ctx, f)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return p.fail(res, err), nil
	}
	if reason != "" {
		res.Status, res.Reason = StatusSkipped, reason
		log.Info("skipping folder", "reason", reason)
		return res, nil
	}

	// Cards touch the homepage only once the whole folder is on disk.
	cards := make([]*goquery.Selection, 0, len(articles))
	for _, pa := range articles {
		ar, card, err := p.writeArticle(home, f, pa)
		if err != nil {
			return p.fail(res, err), nil
		}
		res.Articles = append(res.Articles, ar)
		cards = append(cards, card)
	}
	for i, card := range cards {
		ar := &res.Articles[i]
		ar.Preview, err = home.Upsert(card, ar.Updated)
		if err != nil {
			return p.fail(res, err), nil
		}
		log.Info("article published", "file", ar.Source, "slug", ar.Slug, "preview", ar.Preview.String())
	}

	if err := home.Save(); err != nil {
		res.Status, res.Err = StatusFailed, err
		return res, err
	}
	for _, ar := range res.Articles {
		p.cfg.audit.Info(fmt.Sprintf("Post %s --> %s.html went public on index page.", ar.Source, ar.Slug))
	}

	if _, err := MarkProcessed(f); err != nil {
		return p.fail(res, err), nil
	}

	res.Status = StatusPublished
	log.Info("folder published", "articles", len(res.Articles))
	return res, nil
}

// prepare reads, renders and validates every markdown file of f. A non-empty
// reason means the folder is skipped.
func (p *Publisher) prepare(ctx context.Context, f SourceFolder) ([]prepared, string, error) {
	out := make([]prepared, 0, len(f.Markdown))
	for _, name := range f.Markdown {
		src, err := os.ReadFile(filepath.Join(f.Path, name)) // #nosec G304 -- file under markdown dir
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrSourceRead, name, err)
		}

		meta, body, err := pipeline.SplitFrontMatter(src)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", name, err)
		}
		if meta.Draft {
			return nil, "draft: " + name, nil
		}

		root, err := p.cfg.renderer.Render(ctx, body)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", name, err)
		}
		a, err := pipeline.NewArticle(root)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", name, err)
		}
		if !slug.IsURLSafe(a.Slug) {
			p.cfg.logger.Warn("slug needs escaping in links", "file", name, "slug", a.Slug)
		}
		out = append(out, prepared{source: name, article: a})
	}
	return out, "", nil
}

// writeArticle copies assets and writes the page for one article. It returns
// the preview card without touching the homepage.
func (p *Publisher) writeArticle(home *feed.Homepage, f SourceFolder, pa prepared) (ArticleResult, *goquery.Selection, error) {
	a := pa.article
	page := a.PageName()
	ar := ArticleResult{
		Source:   pa.source,
		Title:    a.Title,
		Slug:     a.Slug,
		PagePath: p.site.PagePath(a.Slug),
	}

	// A sibling with the same slug has already copied its assets.
	assetDir := p.site.AssetDir(a.Slug)
	ar.Updated = fileutil.DirExists(assetDir) || home.Has(a.Slug)
	if ar.Updated {
		p.cfg.audit.Info(fmt.Sprintf("Post %s --> %s was updated (one with the same name already existed and was overwritten).", pa.source, page))
	}

	if _, err := fileutil.CopyAssets(f.Path, assetDir, fileutil.IsMarkdown); err != nil {
		return ar, nil, fmt.Errorf("%w: %w", ErrAssetCopy, err)
	}

	body := a.Clone()
	pipeline.RelocateReferences(body.Body, a.Slug, pipeline.FromPostsPage)
	html, err := pipeline.ComposeArticle(home.Template(), body)
	if err != nil {
		return ar, nil, fmt.Errorf("%w: %w", ErrPageWrite, err)
	}
	if err := os.MkdirAll(p.site.PostsDir, fileutil.DirPermissions); err != nil {
		return ar, nil, fmt.Errorf("%w: %w", ErrPageWrite, err)
	}
	if err := fileutil.WriteFileAtomic(ar.PagePath, []byte(html), fileutil.FilePermissions); err != nil {
		return ar, nil, fmt.Errorf("%w: %w", ErrPageWrite, err)
	}
	p.cfg.audit.Info(fmt.Sprintf("Post %s --> %s went public in posts dir.", pa.source, page))

	return ar, pipeline.ComposePreview(a, p.cfg.previewParagraphs), nil
}

func (p *Publisher) fail(res FolderResult, err error) FolderResult {
	res.Status, res.Err = StatusFailed, err
	p.cfg.logger.Error("folder left unprocessed", "folder", res.Name, "error", err)
	return res
}
