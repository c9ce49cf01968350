// File path: internal/siteindex/context.go
package siteindex

import (
	"regexp"
	"strings"

	"github.com/isyuricunha/website-sub003/internal/content"
)

var (
	blogPathPattern    = regexp.MustCompile(`^/blog/([^/]+)$`)
	projectPathPattern = regexp.MustCompile(`^/projects/([^/]+)$`)
	snippetPathPattern = regexp.MustCompile(`^/snippet/([^/]+)$`)
	pagePathPattern    = regexp.MustCompile(`^/([^/]+)$`)
)

// PageContext describes the content entry behind the page a visitor is
// currently viewing.
type PageContext struct {
	Type        content.Kind `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Href        string       `json:"href"`
	Excerpt     string       `json:"excerpt"`
}

// PageContext resolves a request path to the entry it renders, in the target
// locale. The path's own locale prefix is stripped first: a visitor can land
// on a Portuguese URL while chatting in English, and the lookup must follow
// the chat locale, not the referrer's. Returns nil when the path maps to no
// known content route.
func (ix *Index) PageContext(pagePath, locale string) *PageContext {
	normalized := ix.stripLocalePrefix(pagePath)

	if m := blogPathPattern.FindStringSubmatch(normalized); m != nil {
		post, ok := ix.catalog.FindPost(m[1], locale)
		if !ok {
			return nil
		}
		return &PageContext{
			Type:        content.KindPost,
			Title:       post.Title,
			Description: post.Summary,
			Href:        ix.resolve("/blog/"+post.Slug, locale),
			Excerpt:     truncate(post.Content, excerptLimit),
		}
	}

	if m := projectPathPattern.FindStringSubmatch(normalized); m != nil {
		project, ok := ix.catalog.FindProject(m[1], locale)
		if !ok {
			return nil
		}
		return &PageContext{
			Type:        content.KindProject,
			Title:       project.Name,
			Description: project.Description,
			Href:        ix.resolve("/projects/"+project.Slug, locale),
			Excerpt:     truncate(project.Content, excerptLimit),
		}
	}

	if m := snippetPathPattern.FindStringSubmatch(normalized); m != nil {
		snippet, ok := ix.catalog.FindSnippet(m[1], locale)
		if !ok {
			return nil
		}
		return &PageContext{
			Type:        content.KindSnippet,
			Title:       snippet.Title,
			Description: snippet.Description,
			Href:        ix.resolve("/snippet/"+snippet.Slug, locale),
			Excerpt:     truncate(snippet.Content, excerptLimit),
		}
	}

	// Single-segment paths fall back to standalone pages. The root path and
	// non-content routes fail the lookup and resolve to nil.
	if m := pagePathPattern.FindStringSubmatch(normalized); m != nil {
		page, ok := ix.catalog.FindPage(m[1], locale)
		if !ok {
			return nil
		}
		return &PageContext{
			Type:        content.KindPage,
			Title:       m[1],
			Description: m[1],
			Href:        ix.resolve("/"+page.Slug, locale),
			Excerpt:     truncate(page.Content, excerptLimit),
		}
	}

	return nil
}

var slashRuns = regexp.MustCompile(`/+`)

func (ix *Index) stripLocalePrefix(path string) string {
	trimmed := strings.TrimSpace(path)
	stripped := ix.localePrefix.ReplaceAllString(trimmed, "/")
	return slashRuns.ReplaceAllString(stripped, "/")
}
