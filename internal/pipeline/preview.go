package pipeline

import (
	"path"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Preview card constants.
const (
	PreviewClass             = "article-preview"
	ReadMoreText             = "Read more"
	PostsDirName             = "posts"
	DefaultPreviewParagraphs = 4
)

// ComposePreview builds the homepage preview card for a:
//
//	<div class="article-preview" id="<slug>">
//	  <h3>title</h3> <p>...</p> x paragraphs <a href="posts/<slug>.html">Read more</a>
//	</div>
//
// Paragraphs are taken in document order from a deep copy of the article and
// their references relocated for the homepage. A count below 1 selects
// DefaultPreviewParagraphs. The card is not attached to any document.
func ComposePreview(a *Article, paragraphs int) *goquery.Selection {
	if paragraphs < 1 {
		paragraphs = DefaultPreviewParagraphs
	}

	body := goquery.NewDocumentFromNode(cloneNode(a.Body))
	card := newElement(atom.Div, "class", PreviewClass, "id", a.Slug)

	if heading := body.Find(TitleSelector).First(); heading.Length() > 0 {
		card.AppendChild(detach(heading.Get(0)))
	}

	var picked []*html.Node
	body.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		picked = append(picked, p.Get(0))
		return len(picked) < paragraphs
	})
	for _, p := range picked {
		RelocateReferences(p, a.Slug, FromHomepage)
		card.AppendChild(detach(p))
	}

	card.AppendChild(newTextElement(atom.A, ReadMoreText,
		"href", path.Join(PostsDirName, a.PageName())))

	return goquery.NewDocumentFromNode(card).Selection
}
