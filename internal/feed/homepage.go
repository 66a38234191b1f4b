// Package feed maintains the preview list on the site homepage.
//
// The homepage file is both the live feed and the template every article
// page is cloned from. It is parsed once, mutated in memory and written back
// with Save.
package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// Sentinel errors for homepage operations.
var (
	ErrHomepageLoad    = errors.New("failed to load homepage")
	ErrHomepagePersist = errors.New("failed to persist homepage")
	ErrInvalidCard     = errors.New("preview card has no id")

	// ErrTemplateContract is pipeline.ErrTemplateContract.
	ErrTemplateContract = pipeline.ErrTemplateContract
)

// FileName is the homepage file inside the site root.
const FileName = "index.html"

// UpsertResult reports what Upsert did.
type UpsertResult int

const (
	// Inserted means the card became the first preview.
	Inserted UpsertResult = iota
	// Replaced means an existing preview was re-populated in place.
	Replaced
	// InsertedMissing means an update found nothing to replace and the card
	// was inserted first instead.
	InsertedMissing
)

// String implements fmt.Stringer.
func (r UpsertResult) String() string {
	switch r {
	case Replaced:
		return "replaced"
	case InsertedMissing:
		return "inserted (nothing to replace)"
	default:
		return "inserted"
	}
}

// Homepage is a parsed homepage document.
type Homepage struct {
	path   string
	doc    *goquery.Document
	logger *slog.Logger
}

// Load parses the homepage at path and checks the template contract.
// A nil logger discards diagnostics.
func Load(path string, logger *slog.Logger) (*Homepage, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.Open(path) // #nosec G304 -- path from site config
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHomepageLoad, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrHomepageLoad, path, err)
	}
	if err := pipeline.CheckTemplate(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Homepage{path: path, doc: doc, logger: logger}, nil
}

// Template returns a deep copy of the document for page composition.
func (h *Homepage) Template() *goquery.Document {
	return goquery.NewDocumentFromNode(h.doc.Clone().Get(0))
}

func (h *Homepage) container() *goquery.Selection {
	return h.doc.Find(pipeline.ContainerSelector).First()
}

// preview returns the container child whose id is slug. Ids are compared
// directly so slugs need not be valid CSS identifiers.
func (h *Homepage) preview(slug string) *goquery.Selection {
	return h.container().Children().FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, ok := s.Attr("id")
		return ok && id == slug
	}).First()
}

// Has reports whether a preview with id slug exists.
func (h *Homepage) Has(slug string) bool {
	return h.preview(slug).Length() > 0
}

// Slugs returns the ids of the container children, newest first.
func (h *Homepage) Slugs() []string {
	var slugs []string
	h.container().Children().Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok && id != "" {
			slugs = append(slugs, id)
		}
	})
	return slugs
}

// Upsert places card in the feed. With isUpdate, an existing preview with
// the card's id is emptied and re-populated from the card. Otherwise, or
// when no such preview exists, the card becomes the first child.
func (h *Homepage) Upsert(card *goquery.Selection, isUpdate bool) (UpsertResult, error) {
	id, ok := card.Attr("id")
	if !ok || id == "" {
		return Inserted, ErrInvalidCard
	}
	cardNode := card.Get(0)

	if isUpdate {
		existing := h.preview(id)
		if existing.Length() > 0 {
			existing.Empty()
			target := existing.Get(0)
			for c := cardNode.FirstChild; c != nil; {
				next := c.NextSibling
				cardNode.RemoveChild(c)
				target.AppendChild(c)
				c = next
			}
			if class, ok := card.Attr("class"); ok {
				existing.SetAttr("class", class)
			}
			return Replaced, nil
		}
		h.logger.Warn("update requested but no preview to replace, inserting at top", "slug", id)
		h.insertFirst(cardNode)
		return InsertedMissing, nil
	}

	h.insertFirst(cardNode)
	return Inserted, nil
}

func (h *Homepage) insertFirst(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	c := h.container().Get(0)
	c.InsertBefore(n, c.FirstChild)
}

// Remove detaches the preview with id slug. Returns false when absent.
func (h *Homepage) Remove(slug string) bool {
	p := h.preview(slug)
	if p.Length() == 0 {
		return false
	}
	p.Remove()
	return true
}

// Render returns the document as HTML.
func (h *Homepage) Render() (string, error) {
	return pipeline.RenderNode(h.doc.Get(0))
}

// Save writes the document back to its file, replacing it atomically.
func (h *Homepage) Save() error {
	out, err := h.Render()
	if err != nil {
		return fmt.Errorf("%w: rendering: %v", ErrHomepagePersist, err)
	}
	if err := fileutil.WriteFileAtomic(h.path, []byte(out), fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrHomepagePersist, err)
	}
	return nil
}
