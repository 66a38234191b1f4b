package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
)

// RelocationMode selects where relocated references are resolved from.
type RelocationMode int

const (
	// FromPostsPage resolves from <root>/posts/: ../assets/<slug>/<name>.
	FromPostsPage RelocationMode = iota
	// FromHomepage resolves from <root>/: assets/<slug>/<name>.
	FromHomepage
)

// AssetsDirName is the site directory holding per-article assets.
const AssetsDirName = "assets"

func (m RelocationMode) base(slug string) string {
	if m == FromHomepage {
		return path.Join(AssetsDirName, slug)
	}
	return path.Join("..", AssetsDirName, slug)
}

// String implements fmt.Stringer.
func (m RelocationMode) String() string {
	if m == FromHomepage {
		return "homepage"
	}
	return "posts"
}

// RelocateReferences rewrites local img[src] and a[href] values under root
// to point into the slug's asset directory. Non-local values (see IsLocalRef)
// are left untouched.
func RelocateReferences(root *html.Node, slug string, mode RelocationMode) {
	relocateNode(root, mode.base(slug))
}

func relocateNode(n *html.Node, base string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			relocateAttr(n, "src", base)
		case "a":
			relocateAttr(n, "href", base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		relocateNode(c, base)
	}
}

func relocateAttr(n *html.Node, key, base string) {
	for i, a := range n.Attr {
		if a.Key != key || !IsLocalRef(a.Val) {
			continue
		}
		n.Attr[i].Val = path.Join(base, a.Val)
	}
}

// IsLocalRef reports whether ref names a file shipped next to the article.
// Anything containing "https" is external. So are empty values, fragment
// anchors, root-relative paths, protocol-relative URLs and any value with a
// URL scheme (http:, mailto:, data:).
func IsLocalRef(ref string) bool {
	if ref == "" || strings.Contains(ref, "https") {
		return false
	}
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}
	return !hasScheme(ref)
}

// hasScheme reports whether ref starts with an RFC 3986 scheme followed by ':'.
// A colon after the first '/', '?' or '#' belongs to the path.
func hasScheme(ref string) bool {
	for i, c := range ref {
		switch {
		case c == ':':
			return i > 0
		case c == '/' || c == '?' || c == '#':
			return false
		case i == 0 && !isAlpha(c):
			return false
		case !isAlpha(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.':
			return false
		}
	}
	return false
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
