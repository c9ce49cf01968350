// File path: internal/assistant/answers.go

// Package assistant composes the citation and recommendation engines into the
// short natural-language answers and prepared chat context consumed by the
// external generation layer. Everything is pure string assembly over a
// catalog snapshot; no provider is ever called from here.
package assistant

import (
	"regexp"
	"strings"

	"github.com/isyuricunha/website-sub003/internal/content"
	"github.com/isyuricunha/website-sub003/internal/recommend"
	"github.com/isyuricunha/website-sub003/internal/siteindex"
)

// Answer pairs a short message with the citations backing it.
type Answer struct {
	Message   string               `json:"message"`
	Citations []siteindex.Citation `json:"citations"`
}

// NavigationRequest asks for pages matching a free-text query.
type NavigationRequest struct {
	Query  string
	Locale string
	Limit  int
}

// NavigationAnswer lists pages that match the query, or a no-match template
// when nothing scores. Portuguese locales get Portuguese templates.
func NavigationAnswer(ix *siteindex.Index, req NavigationRequest) Answer {
	citations := ix.FindCitations(siteindex.CitationRequest{
		Message: req.Query,
		Locale:  req.Locale,
		Limit:   req.Limit,
	})
	if len(citations) == 0 {
		if isPortuguese(req.Locale) {
			return Answer{Message: "Não encontrei nada muito próximo. Você pode tentar buscar por outra palavra-chave (ex.: \"blog\", \"projetos\", \"sobre\")."}
		}
		return Answer{Message: "I could not find a close match. Try different keywords (e.g., \"blog\", \"projects\", \"about\")."}
	}

	intro := "Here are some pages that may help:"
	if isPortuguese(req.Locale) {
		intro = "Encontrei estas páginas que podem ajudar:"
	}
	lines := make([]string, 0, len(citations)+2)
	lines = append(lines, intro, "")
	for _, c := range citations {
		lines = append(lines, "- "+c.Title+": "+c.Href)
	}
	return Answer{Message: strings.Join(lines, "\n"), Citations: citations}
}

// PostRecommendationRequest asks for posts similar to whatever the query
// names. ExcludeIDs uses composite ids ("post:slug").
type PostRecommendationRequest struct {
	Query      string
	Locale     string
	Limit      int
	ExcludeIDs []string
}

// PostRecommendationAnswer recommends posts for queries like
//
//	Recommend more posts like "The Art of Starting Over"
//
// A quoted title that matches an existing post (exact, case-sensitive) makes
// that post the recommendation source and joins the exclusion set, so the
// named post is never suggested back to the user. Caller exclusions merge in
// unchanged.
func PostRecommendationAnswer(catalog content.Catalog, resolve content.PathResolver, req PostRecommendationRequest) Answer {
	excludes := append([]string(nil), req.ExcludeIDs...)
	sourceSlug := ""
	if title := quotedTitle(req.Query); title != "" {
		if post, ok := catalog.FindPostByTitle(title, req.Locale); ok {
			sourceSlug = post.Slug
			excludes = append(excludes, string(content.KindPost)+":"+post.Slug)
		}
	}

	recs := recommend.Posts(catalog, resolve, recommend.Request{
		Slug:       sourceSlug,
		Locale:     req.Locale,
		Limit:      req.Limit,
		ExcludeIDs: excludes,
	})
	if len(recs) == 0 {
		if isPortuguese(req.Locale) {
			return Answer{Message: "Não encontrei outros posts para recomendar agora."}
		}
		return Answer{Message: "I could not find other posts to recommend right now."}
	}

	intro := "You might enjoy these posts:"
	if isPortuguese(req.Locale) {
		intro = "Talvez você goste destes posts:"
	}
	citations := make([]siteindex.Citation, 0, len(recs))
	lines := make([]string, 0, len(recs)+2)
	lines = append(lines, intro, "")
	for _, rec := range recs {
		citations = append(citations, siteindex.Citation{
			ID:      rec.ID,
			Title:   rec.Title,
			Href:    rec.Href,
			Excerpt: rec.Description,
			Type:    rec.Type,
		})
		lines = append(lines, "- "+rec.Title+": "+rec.Href)
	}
	return Answer{Message: strings.Join(lines, "\n"), Citations: citations}
}

// quotedTitle extracts the first double-quoted segment of a query. Straight
// and curly quotes both count; the match against post titles stays
// case-sensitive.
var quotedPattern = regexp.MustCompile(`"([^"]+)"|“([^”]+)”`)

func quotedTitle(query string) string {
	m := quotedPattern.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

func isPortuguese(locale string) bool {
	return strings.HasPrefix(strings.ToLower(locale), "pt")
}
