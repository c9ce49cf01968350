// File path: internal/content/types.go
package content

import (
	"context"
	"strings"
)

// Kind tags the four content collections served by the site.
type Kind string

const (
	KindPost    Kind = "post"
	KindProject Kind = "project"
	KindPage    Kind = "page"
	KindSnippet Kind = "snippet"
)

// Post is a blog article produced by the content pipeline.
type Post struct {
	Locale   string   `json:"locale"`
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	Locale      string   `json:"locale"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags,omitempty"`
}

// Page is a standalone site page. Path carries the source location the
// pipeline compiled it from; the last segment doubles as a display title.
type Page struct {
	Locale  string `json:"locale"`
	Slug    string `json:"slug"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content"`
}

// Snippet is a short code or note entry.
type Snippet struct {
	Locale      string   `json:"locale"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags,omitempty"`
}

// Catalog is an immutable snapshot of every collection. Callers must pass the
// same snapshot through a single request's call chain; nothing here mutates it.
type Catalog struct {
	Posts    []Post    `json:"posts"`
	Projects []Project `json:"projects"`
	Pages    []Page    `json:"pages"`
	Snippets []Snippet `json:"snippets"`
}

// Provider supplies catalog snapshots to the serving layer. Implementations
// must return an already-loaded, consistent snapshot; fetch failures are the
// provider's concern, not the core's.
type Provider interface {
	Snapshot(ctx context.Context) (Catalog, error)
}

// Static wraps a fixed catalog as a Provider. Used by tests and by
// deployments that load the catalog once at startup.
func Static(catalog Catalog) Provider {
	return staticProvider{catalog: catalog}
}

type staticProvider struct {
	catalog Catalog
}

func (p staticProvider) Snapshot(context.Context) (Catalog, error) {
	return p.catalog, nil
}

// FindPost locates a post by slug within a locale.
func (c Catalog) FindPost(slug, locale string) (Post, bool) {
	for _, post := range c.Posts {
		if post.Slug == slug && post.Locale == locale {
			return post, true
		}
	}
	return Post{}, false
}

// FindPostByTitle locates a post by exact title within a locale. The match is
// case-sensitive.
func (c Catalog) FindPostByTitle(title, locale string) (Post, bool) {
	for _, post := range c.Posts {
		if post.Title == title && post.Locale == locale {
			return post, true
		}
	}
	return Post{}, false
}

// FindProject locates a project by slug within a locale.
func (c Catalog) FindProject(slug, locale string) (Project, bool) {
	for _, project := range c.Projects {
		if project.Slug == slug && project.Locale == locale {
			return project, true
		}
	}
	return Project{}, false
}

// FindPage locates a page by slug within a locale.
func (c Catalog) FindPage(slug, locale string) (Page, bool) {
	for _, page := range c.Pages {
		if page.Slug == slug && page.Locale == locale {
			return page, true
		}
	}
	return Page{}, false
}

// FindSnippet locates a snippet by slug within a locale.
func (c Catalog) FindSnippet(slug, locale string) (Snippet, bool) {
	for _, snippet := range c.Snippets {
		if snippet.Slug == slug && snippet.Locale == locale {
			return snippet, true
		}
	}
	return Snippet{}, false
}

// Title derives a page's display title from the last segment of its source
// path, falling back to the slug.
func (p Page) Title() string {
	path := strings.TrimSpace(p.Path)
	if path == "" {
		return p.Slug
	}
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return p.Slug
	}
	return segments[len(segments)-1]
}
