// File path: internal/siteindex/index_test.go
package siteindex

import (
	"testing"

	"github.com/isyuricunha/website-sub003/internal/content"
)

func fixtureCatalog() content.Catalog {
	return content.Catalog{
		Posts: []content.Post{
			{
				Locale:  "en",
				Slug:    "hello",
				Title:   "Hello World",
				Summary: "Intro post",
				Content: "Hello content",
			},
			{
				Locale:  "en",
				Slug:    "art-of-starting-over",
				Title:   "The Art of Starting Over",
				Summary: "A post about starting over",
				Content: "Content about starting over",
			},
			{
				Locale:  "pt",
				Slug:    "hello",
				Title:   "Olá Mundo",
				Summary: "Post introdutório",
				Content: "Conteúdo em português",
			},
		},
		Projects: []content.Project{
			{
				Locale:      "en",
				Slug:        "proj",
				Name:        "Proj",
				Description: "Proj desc",
				Content:     "Proj content",
			},
		},
		Pages: []content.Page{
			{
				Locale:  "en",
				Slug:    "about",
				Path:    "en/about",
				Content: "About page content",
			},
		},
		Snippets: []content.Snippet{
			{
				Locale:      "en",
				Slug:        "s1",
				Title:       "S1",
				Description: "S1 desc",
				Content:     "snippet body",
			},
		},
	}
}

func fixtureIndex() *Index {
	return New(fixtureCatalog(), []string{"en", "pt"}, content.LocalePaths())
}

func TestEntriesFiltersLocaleAndBuildsHrefs(t *testing.T) {
	entries := fixtureIndex().Entries("en")

	hrefs := make(map[string]string)
	for _, entry := range entries {
		hrefs[entry.ID] = entry.Href
	}
	expected := map[string]string{
		"post:hello":                "/en/blog/hello",
		"post:art-of-starting-over": "/en/blog/art-of-starting-over",
		"project:proj":              "/en/projects/proj",
		"page:about":                "/en/about",
		"snippet:s1":                "/en/snippet/s1",
	}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for id, href := range expected {
		if hrefs[id] != href {
			t.Errorf("entry %s: expected href %q, got %q", id, href, hrefs[id])
		}
	}
}

func TestEntriesLocaleIsolation(t *testing.T) {
	entries := fixtureIndex().Entries("pt")
	if len(entries) != 1 {
		t.Fatalf("expected 1 pt entry, got %d", len(entries))
	}
	if entries[0].ID != "post:hello" || entries[0].Href != "/pt/blog/hello" {
		t.Fatalf("unexpected pt entry: %+v", entries[0])
	}
	if got := fixtureIndex().Entries("fr"); len(got) != 0 {
		t.Fatalf("expected no fr entries, got %d", len(got))
	}
}

func TestEntriesDeriveTitles(t *testing.T) {
	entries := fixtureIndex().Entries("en")
	for _, entry := range entries {
		if entry.ID == "page:about" && entry.Title != "about" {
			t.Fatalf("expected page title derived from path, got %q", entry.Title)
		}
	}
}

func TestEntriesDedupeByHref(t *testing.T) {
	catalog := fixtureCatalog()
	catalog.Pages = append(catalog.Pages, content.Page{Locale: "en", Slug: "about", Path: "en/duplicate"})
	entries := New(catalog, []string{"en", "pt"}, content.LocalePaths()).Entries("en")
	count := 0
	for _, entry := range entries {
		if entry.Href == "/en/about" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one entry for /en/about, got %d", count)
	}
}

func TestPageContextResolvesPostAcrossLocalePrefix(t *testing.T) {
	ix := fixtureIndex()

	ctx := ix.PageContext("/pt/blog/hello", "en")
	if ctx == nil {
		t.Fatal("expected page context")
	}
	if ctx.Type != content.KindPost {
		t.Fatalf("expected post context, got %s", ctx.Type)
	}
	if ctx.Href != "/en/blog/hello" {
		t.Fatalf("expected target-locale href, got %q", ctx.Href)
	}
	if ctx.Title != "Hello World" {
		t.Fatalf("expected English title, got %q", ctx.Title)
	}
}

func TestPageContextRecognizesAllShapes(t *testing.T) {
	ix := fixtureIndex()

	cases := []struct {
		path string
		kind content.Kind
	}{
		{"/en/blog/hello", content.KindPost},
		{"/en/projects/proj", content.KindProject},
		{"/en/snippet/s1", content.KindSnippet},
		{"/en/about", content.KindPage},
	}
	for _, tc := range cases {
		ctx := ix.PageContext(tc.path, "en")
		if ctx == nil {
			t.Fatalf("path %s: expected context", tc.path)
		}
		if ctx.Type != tc.kind {
			t.Fatalf("path %s: expected %s, got %s", tc.path, tc.kind, ctx.Type)
		}
	}
}

func TestPageContextUnknownPaths(t *testing.T) {
	ix := fixtureIndex()

	for _, path := range []string{"/", "/en", "/spotify", "/en/blog/missing", "/en/blog/hello/extra", ""} {
		if ctx := ix.PageContext(path, "en"); ctx != nil {
			t.Fatalf("path %q: expected nil context, got %+v", path, ctx)
		}
	}
}

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	if got := truncate("héllo", 2); got != "hé" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
	if got := truncate("short", 100); got != "short" {
		t.Fatalf("expected untouched text, got %q", got)
	}
}
