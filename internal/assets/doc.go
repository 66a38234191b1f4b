// Package assets provides the stylesheet and homepage template used to
// scaffold a new site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in site)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # Site stylesheet, written to {assets}/styles.css
//	└── templates/
//	    └── {name}.html      # Homepage template, rendered to {root}/index.html
//
// Homepage templates are html/template sources receiving a Page value. The
// rendered page must keep one <h1> and a first <div> that will hold previews.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
