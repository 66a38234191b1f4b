package pipeline

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2blog/internal/slug"
)

// Sentinel errors for article composition.
var (
	// ErrMalformedArticle indicates the article has no non-empty level-3 heading.
	ErrMalformedArticle = errors.New("article has no level-3 title heading")

	// ErrTemplateContract indicates the homepage cannot serve as a page template.
	ErrTemplateContract = errors.New("homepage template contract violated")
)

// Template selectors.
const (
	TitleSelector     = "h3"  // article title heading
	ContainerSelector = "div" // first div of the template holds content
	HeadingSelector   = "h1"  // site title
)

// Article is one rendered markdown article.
type Article struct {
	Title string
	Slug  string
	Body  *html.Node // parentless <div class="article">
}

// NewArticle extracts the title from the first h3 of body and derives the
// slug. Returns ErrMalformedArticle when no usable title exists.
func NewArticle(body *html.Node) (*Article, error) {
	heading := goquery.NewDocumentFromNode(body).Find(TitleSelector).First()
	if heading.Length() == 0 {
		return nil, ErrMalformedArticle
	}

	title := strings.TrimSpace(heading.Text())
	if title == "" {
		return nil, fmt.Errorf("%w: empty heading", ErrMalformedArticle)
	}

	return &Article{
		Title: title,
		Slug:  slug.FromTitle(title),
		Body:  body,
	}, nil
}

// Clone returns a deep copy of a.
func (a *Article) Clone() *Article {
	return &Article{Title: a.Title, Slug: a.Slug, Body: cloneNode(a.Body)}
}

// PageName returns the article page file name, <slug>.html.
func (a *Article) PageName() string {
	return a.Slug + ".html"
}

// CheckTemplate verifies doc has exactly one h1 and a content container.
func CheckTemplate(doc *goquery.Document) error {
	if n := doc.Find(HeadingSelector).Length(); n != 1 {
		return fmt.Errorf("%w: want exactly one <h1>, found %d", ErrTemplateContract, n)
	}
	if doc.Find(ContainerSelector).Length() == 0 {
		return fmt.Errorf("%w: no <div> content container", ErrTemplateContract)
	}
	return nil
}

// ComposeArticle renders a standalone article page from the homepage
// template. Neither template nor a is modified. The article body is inserted
// as given, so callers relocate its references for the posts directory first.
func ComposeArticle(template *goquery.Document, a *Article) (string, error) {
	doc := goquery.NewDocumentFromNode(template.Clone().Get(0))

	container := doc.Find(ContainerSelector).First()
	if container.Length() == 0 {
		return "", fmt.Errorf("%w: no <div> content container", ErrTemplateContract)
	}
	container.Empty()
	container.Get(0).AppendChild(cloneNode(a.Body))

	setPageTitle(doc, a.Title)
	relocateStylesheet(doc)

	page, err := RenderNode(doc.Get(0))
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", a.PageName(), err)
	}
	return page, nil
}

// setPageTitle sets <title> to "<site title> - <article title>". The site
// title is the template's <title> text, or the h1 text when that is empty.
func setPageTitle(doc *goquery.Document, articleTitle string) {
	title := doc.Find("title").First()
	site := strings.TrimSpace(title.Text())
	if site == "" {
		site = strings.TrimSpace(doc.Find(HeadingSelector).First().Text())
	}

	text := articleTitle
	if site != "" {
		text = site + " - " + articleTitle
	}

	if title.Length() > 0 {
		title.SetText(text)
		return
	}
	head := doc.Find("head").First()
	if head.Length() == 0 {
		return
	}
	head.Get(0).AppendChild(newTextElement(atom.Title, text))
}

// relocateStylesheet points the stylesheet link one level up, since article
// pages live in posts/. Non-local hrefs are kept.
func relocateStylesheet(doc *goquery.Document) {
	link := doc.Find(`link[rel="stylesheet"]`).First()
	if link.Length() == 0 {
		link = doc.Find("link").First()
	}
	href, ok := link.Attr("href")
	if !ok || !IsLocalRef(href) {
		return
	}
	link.SetAttr("href", path.Join("..", href))
}
