// Package slug derives the identifier that names every artifact of an article:
// its page file stem, its asset directory and its preview element id.
package slug

import (
	"strings"

	goslug "github.com/goliatone/go-slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FromTitle lower-cases title and replaces every space with a hyphen.
// No other normalization is applied, so the same title always maps to the
// same slug on publish and on removal.
func FromTitle(title string) string {
	// Casers keep state between calls and are not shared.
	lower := cases.Lower(language.Und)
	return strings.ReplaceAll(lower.String(title), " ", "-")
}

// IsURLSafe reports whether s only holds characters that need no escaping in a
// URL path. Slugs failing this check still work on disk but produce escaped links.
func IsURLSafe(s string) bool {
	return goslug.IsValid(s)
}
