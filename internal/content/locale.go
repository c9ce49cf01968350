// File path: internal/content/locale.go
package content

import "strings"

// PathResolver turns a locale-neutral slug path into the href served for a
// locale. The prefixing policy is owned by the site shell; everything in this
// module treats it as opaque.
type PathResolver func(slug, locale string) string

// DefaultLocales mirrors the site's supported languages.
var DefaultLocales = []string{"en", "pt"}

// LocalePaths returns the site's standard resolver: every href carries a
// leading locale segment so output links stay unambiguous when embedded in
// assistant answers.
func LocalePaths() PathResolver {
	return func(slug, locale string) string {
		if slug == "" {
			slug = "/"
		}
		if !strings.HasPrefix(slug, "/") {
			slug = "/" + slug
		}
		locale = strings.TrimSpace(locale)
		if locale == "" {
			return slug
		}
		return "/" + locale + slug
	}
}
