// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests running setup, or --config when a user config path was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "run 'md2blog setup' or use --config /path/to/blog.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "md2blog") {
			hint += " (searched " + p + ")"
			break
		}
	}

	return format(hint)
}

// ForPermission returns hints for write failures under the site root.
func ForPermission() string {
	return format("check the site root is writable by this user; server roots like /var/www often need sudo")
}

// ForMalformedArticle returns hints for articles without a title heading.
func ForMalformedArticle() string {
	return format("start the article with a level-3 heading, e.g. '### My Title'")
}

// ForTemplateContract returns hints for a homepage that cannot host previews.
func ForTemplateContract() string {
	return format("index.html needs an <h1> and a <div> container; regenerate it with 'md2blog setup --force'")
}

// ForStyleNotFound returns hints for unknown highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
