package md2blog

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// StylesheetName is the stylesheet file written into the assets directory.
const StylesheetName = "styles.css"

// ScaffoldOptions configures Scaffold.
type ScaffoldOptions struct {
	Site      SiteConfig
	Title     string // blog title, required
	Tagline   string // optional subtitle
	AssetPath string // directory overriding the built-in styles/ and templates/
	Style     string // stylesheet name, "default" when empty
	Template  string // homepage template name, "index" when empty
	Force     bool   // overwrite an existing homepage and stylesheet
}

// ScaffoldResult lists what Scaffold wrote.
type ScaffoldResult struct {
	Dirs       []string // directories ensured, in SiteConfig order
	Homepage   string
	Stylesheet string // empty when an existing stylesheet was kept
}

// Scaffold creates the site directories and writes a starter homepage and
// stylesheet. An existing homepage is only replaced with Force.
func Scaffold(opts ScaffoldOptions) (*ScaffoldResult, error) {
	if err := opts.Site.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Title) == "" {
		return nil, fmt.Errorf("%w: blog title is required", ErrScaffold)
	}

	homepage := opts.Site.HomepagePath()
	if fileutil.FileExists(homepage) && !opts.Force {
		return nil, fmt.Errorf("%w: %s", ErrHomepageExists, homepage)
	}

	resolver, err := assets.NewAssetResolver(opts.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScaffold, err)
	}
	css, err := resolver.LoadStyle(orDefault(opts.Style, assets.DefaultStyleName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScaffold, err)
	}
	page, err := renderHomepage(resolver, opts)
	if err != nil {
		return nil, err
	}

	res := &ScaffoldResult{Homepage: homepage}
	for _, dir := range []string{opts.Site.RootDir, opts.Site.PostsDir, opts.Site.AssetsDir, opts.Site.LogDir, opts.Site.MarkdownDir} {
		if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %w", ErrScaffold, dir, err)
		}
		res.Dirs = append(res.Dirs, dir)
	}

	if err := fileutil.WriteFileAtomic(homepage, page, fileutil.FilePermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScaffold, err)
	}

	stylesheet := filepath.Join(opts.Site.AssetsDir, StylesheetName)
	if !fileutil.FileExists(stylesheet) || opts.Force {
		if err := fileutil.WriteFileAtomic(stylesheet, []byte(css), fileutil.FilePermissions); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScaffold, err)
		}
		res.Stylesheet = stylesheet
	}

	return res, nil
}

// renderHomepage executes the homepage template and checks the result can
// host preview cards.
func renderHomepage(resolver *assets.AssetResolver, opts ScaffoldOptions) ([]byte, error) {
	src, err := resolver.LoadTemplate(orDefault(opts.Template, assets.DefaultTemplateName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScaffold, err)
	}
	tmpl, err := template.New("homepage").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing homepage template: %w", ErrScaffold, err)
	}

	var buf bytes.Buffer
	data := assets.Page{
		Title:      opts.Title,
		Tagline:    opts.Tagline,
		Stylesheet: stylesheetHref(opts.Site),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: rendering homepage template: %w", ErrScaffold, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScaffold, err)
	}
	if err := pipeline.CheckTemplate(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stylesheetHref returns the stylesheet location relative to the root, or
// assets/styles.css when the assets directory lives outside the root.
func stylesheetHref(site SiteConfig) string {
	rel, err := filepath.Rel(site.RootDir, site.AssetsDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = pipeline.AssetsDirName
	}
	return path.Join(filepath.ToSlash(rel), StylesheetName)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
