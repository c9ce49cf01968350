// File path: internal/siteindex/index.go

// Package siteindex projects a content catalog snapshot into a flat,
// locale-scoped index of site entries and answers "what page is the user on"
// and "which entries support this query" for the assistant layer. Everything
// here is a pure function of the snapshot passed to New; the index holds no
// mutable state and is safe for concurrent use.
package siteindex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/isyuricunha/website-sub003/internal/content"
)

// excerptLimit bounds the content excerpt attached to entries and page
// contexts, in runes.
const excerptLimit = 1200

// Entry is one indexable site entry. ID is "{type}:{slug}", unique within a
// locale.
type Entry struct {
	ID          string       `json:"id"`
	Type        content.Kind `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Href        string       `json:"href"`
	Slug        string       `json:"slug"`
	Excerpt     string       `json:"excerpt,omitempty"`
}

// Index scopes catalog lookups to a fixed snapshot, locale set, and path
// resolution policy.
type Index struct {
	catalog      content.Catalog
	resolve      content.PathResolver
	localePrefix *regexp.Regexp
}

// New builds an index over the given snapshot. locales drives locale-prefix
// stripping for incoming paths; resolve produces output hrefs.
func New(catalog content.Catalog, locales []string, resolve content.PathResolver) *Index {
	if len(locales) == 0 {
		locales = content.DefaultLocales
	}
	if resolve == nil {
		resolve = content.LocalePaths()
	}
	quoted := make([]string, 0, len(locales))
	for _, locale := range locales {
		trimmed := strings.TrimSpace(locale)
		if trimmed == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(trimmed))
	}
	prefix := regexp.MustCompile(fmt.Sprintf(`(?i)^/(%s)(/|$)`, strings.Join(quoted, "|")))
	return &Index{catalog: catalog, resolve: resolve, localePrefix: prefix}
}

// Entries returns the flat site index for a locale: all catalog entries whose
// locale matches exactly, concatenated by type in catalog order and
// deduplicated by href. A locale with no content yields an empty slice.
func (ix *Index) Entries(locale string) []Entry {
	var entries []Entry
	for _, post := range ix.catalog.Posts {
		if post.Locale != locale {
			continue
		}
		entries = append(entries, Entry{
			ID:          entryID(content.KindPost, post.Slug),
			Type:        content.KindPost,
			Title:       post.Title,
			Description: post.Summary,
			Href:        ix.resolve("/blog/"+post.Slug, locale),
			Slug:        post.Slug,
			Excerpt:     truncate(post.Content, excerptLimit),
		})
	}
	for _, project := range ix.catalog.Projects {
		if project.Locale != locale {
			continue
		}
		entries = append(entries, Entry{
			ID:          entryID(content.KindProject, project.Slug),
			Type:        content.KindProject,
			Title:       project.Name,
			Description: project.Description,
			Href:        ix.resolve("/projects/"+project.Slug, locale),
			Slug:        project.Slug,
			Excerpt:     truncate(project.Content, excerptLimit),
		})
	}
	for _, page := range ix.catalog.Pages {
		if page.Locale != locale {
			continue
		}
		entries = append(entries, Entry{
			ID:          entryID(content.KindPage, page.Slug),
			Type:        content.KindPage,
			Title:       page.Title(),
			Description: page.Slug,
			Href:        ix.resolve("/"+page.Slug, locale),
			Slug:        page.Slug,
			Excerpt:     truncate(page.Content, excerptLimit),
		})
	}
	for _, snippet := range ix.catalog.Snippets {
		if snippet.Locale != locale {
			continue
		}
		entries = append(entries, Entry{
			ID:          entryID(content.KindSnippet, snippet.Slug),
			Type:        content.KindSnippet,
			Title:       snippet.Title,
			Description: snippet.Description,
			Href:        ix.resolve("/snippet/"+snippet.Slug, locale),
			Slug:        snippet.Slug,
			Excerpt:     truncate(snippet.Content, excerptLimit),
		})
	}
	return dedupeByHref(entries)
}

func entryID(kind content.Kind, slug string) string {
	return string(kind) + ":" + slug
}

func dedupeByHref(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, entry := range entries {
		if _, ok := seen[entry.Href]; ok {
			continue
		}
		seen[entry.Href] = struct{}{}
		out = append(out, entry)
	}
	return out
}

func truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
