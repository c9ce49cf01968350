// File path: internal/siteindex/citations.go
package siteindex

import (
	"sort"
	"strings"

	"github.com/isyuricunha/website-sub003/internal/content"
)

// Citation references a site entry that supports an assistant answer. When a
// page context is available the first citation always carries ID "page".
type Citation struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Href    string       `json:"href"`
	Excerpt string       `json:"excerpt,omitempty"`
	Type    content.Kind `json:"type"`
}

// CitationRequest carries the inputs for FindCitations. A negative Limit is
// treated as zero.
type CitationRequest struct {
	Message  string
	Locale   string
	PagePath string
	Limit    int
}

// FindCitations returns up to Limit citations for a free-text message. The
// current page, when PagePath resolves, occupies the first slot
// unconditionally. Remaining slots hold lexical matches from the locale's
// site index, scored by how many query tokens appear in an entry's title or
// description, deduplicated by ID. The result is never padded: fewer matches
// mean fewer citations.
func (ix *Index) FindCitations(req CitationRequest) []Citation {
	limit := req.Limit
	if limit < 0 {
		limit = 0
	}
	if limit == 0 {
		return nil
	}

	citations := make([]Citation, 0, limit)
	seen := make(map[string]struct{})

	if strings.TrimSpace(req.PagePath) != "" {
		if pageCtx := ix.PageContext(req.PagePath, req.Locale); pageCtx != nil {
			citations = append(citations, Citation{
				ID:      "page",
				Title:   pageCtx.Title,
				Href:    pageCtx.Href,
				Excerpt: pageCtx.Description,
				Type:    pageCtx.Type,
			})
			seen["page"] = struct{}{}
		}
	}

	for _, match := range ix.scoreEntries(req.Message, req.Locale) {
		if len(citations) >= limit {
			break
		}
		if _, ok := seen[match.entry.ID]; ok {
			continue
		}
		seen[match.entry.ID] = struct{}{}
		citations = append(citations, Citation{
			ID:      match.entry.ID,
			Title:   match.entry.Title,
			Href:    match.entry.Href,
			Excerpt: match.entry.Description,
			Type:    match.entry.Type,
		})
	}
	if len(citations) == 0 {
		return nil
	}
	return citations
}

type scoredEntry struct {
	entry Entry
	score int
}

// scoreEntries ranks the locale's index entries against the message. Score is
// the count of distinct query tokens found in the title or description,
// case-insensitive. Zero-score entries drop out; ties keep catalog order.
func (ix *Index) scoreEntries(message, locale string) []scoredEntry {
	tokens := tokenize(message)
	if len(tokens) == 0 {
		return nil
	}
	var scored []scoredEntry
	for _, entry := range ix.Entries(locale) {
		title := strings.ToLower(entry.Title)
		description := strings.ToLower(entry.Description)
		score := 0
		for _, token := range tokens {
			if strings.Contains(title, token) || strings.Contains(description, token) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		scored = append(scored, scoredEntry{entry: entry, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// tokenize lowercases the message and splits on non-alphanumeric runes.
// Hyphens survive so slug-shaped terms keep matching.
func tokenize(message string) []string {
	lowered := strings.ToLower(message)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return ' '
		}
	}, lowered)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		tokens = append(tokens, field)
	}
	return tokens
}
