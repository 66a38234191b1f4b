package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const testTemplate = `<!DOCTYPE html>
<html>
<head>
<title>My Blog</title>
<link rel="stylesheet" href="assets/styles.css">
</head>
<body>
<h1>My Blog<p class="tagline">notes</p></h1>
<div class="content"><div class="article-preview" id="older">old</div></div>
</body>
</html>`

func mustRender(t *testing.T, md string) *html.Node {
	t.Helper()
	root, err := NewGoldmarkRenderer().Render(context.Background(), []byte(md))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return root
}

func mustArticle(t *testing.T, md string) *Article {
	t.Helper()
	a, err := NewArticle(mustRender(t, md))
	if err != nil {
		t.Fatalf("NewArticle() error = %v", err)
	}
	return a
}

func mustDocument(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return doc
}

func mustString(t *testing.T, n *html.Node) string {
	t.Helper()
	s, err := RenderNode(n)
	if err != nil {
		t.Fatalf("RenderNode() error = %v", err)
	}
	return s
}
