// File path: internal/recommend/recommend.go

// Package recommend produces "more like this" suggestions for posts and
// snippets. Results are deterministic for a fixed catalog: related items rank
// by score descending with slug-ascending tie-breaks, and slots left over are
// padded with fallback items in slug order.
package recommend

import (
	"sort"
	"strings"

	"github.com/isyuricunha/website-sub003/internal/content"
)

// Recommendation is one suggested content item. IsFallback marks items that
// only fill the requested count rather than sharing tags or category with the
// source.
type Recommendation struct {
	ID          string       `json:"id"`
	Type        content.Kind `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Href        string       `json:"href"`
	Reason      string       `json:"reason"`
	IsFallback  bool         `json:"isFallback"`
}

// Request identifies the source item and bounds the result. ExcludeIDs uses
// composite ids ("post:slug", "snippet:slug"). A negative Limit is treated as
// zero.
type Request struct {
	Slug       string
	Locale     string
	Limit      int
	ExcludeIDs []string
}

const fallbackReason = "also worth reading"

type candidate struct {
	rec   Recommendation
	slug  string
	score int
}

// Posts recommends posts related to the source post by shared tags and
// category. The source itself, excluded ids, and other locales never appear.
// When the source slug is unknown the slug is still excluded and every
// remaining post becomes fallback-eligible.
func Posts(catalog content.Catalog, resolve content.PathResolver, req Request) []Recommendation {
	if resolve == nil {
		resolve = content.LocalePaths()
	}
	limit := clampLimit(req.Limit)
	excluded := excludeSet(req.ExcludeIDs, string(content.KindPost)+":"+req.Slug)

	var source *content.Post
	if found, ok := catalog.FindPost(req.Slug, req.Locale); ok {
		source = &found
	}

	var related, fallback []candidate
	for _, post := range catalog.Posts {
		if post.Locale != req.Locale || post.Slug == req.Slug {
			continue
		}
		id := string(content.KindPost) + ":" + post.Slug
		if _, ok := excluded[id]; ok {
			continue
		}
		score := 0
		var shared []string
		categoryMatch := false
		if source != nil {
			shared = sharedTags(source.Tags, post.Tags)
			score = len(shared)
			if source.Category != "" && post.Category != "" && source.Category == post.Category {
				score++
				categoryMatch = true
			}
		}
		rec := Recommendation{
			ID:          id,
			Type:        content.KindPost,
			Title:       post.Title,
			Description: post.Summary,
			Href:        resolve("/blog/"+post.Slug, req.Locale),
		}
		if score > 0 {
			rec.Reason = relatedReason(categoryMatch, post.Category, shared)
			related = append(related, candidate{rec: rec, slug: post.Slug, score: score})
		} else {
			rec.Reason = fallbackReason
			rec.IsFallback = true
			fallback = append(fallback, candidate{rec: rec, slug: post.Slug})
		}
	}
	return assemble(related, fallback, limit)
}

// Snippets recommends snippets related to the source snippet by shared tags.
func Snippets(catalog content.Catalog, resolve content.PathResolver, req Request) []Recommendation {
	if resolve == nil {
		resolve = content.LocalePaths()
	}
	limit := clampLimit(req.Limit)
	excluded := excludeSet(req.ExcludeIDs, string(content.KindSnippet)+":"+req.Slug)

	var source *content.Snippet
	if found, ok := catalog.FindSnippet(req.Slug, req.Locale); ok {
		source = &found
	}

	var related, fallback []candidate
	for _, snippet := range catalog.Snippets {
		if snippet.Locale != req.Locale || snippet.Slug == req.Slug {
			continue
		}
		id := string(content.KindSnippet) + ":" + snippet.Slug
		if _, ok := excluded[id]; ok {
			continue
		}
		var shared []string
		if source != nil {
			shared = sharedTags(source.Tags, snippet.Tags)
		}
		rec := Recommendation{
			ID:          id,
			Type:        content.KindSnippet,
			Title:       snippet.Title,
			Description: snippet.Description,
			Href:        resolve("/snippet/"+snippet.Slug, req.Locale),
		}
		if len(shared) > 0 {
			rec.Reason = relatedReason(false, "", shared)
			related = append(related, candidate{rec: rec, slug: snippet.Slug, score: len(shared)})
		} else {
			rec.Reason = fallbackReason
			rec.IsFallback = true
			fallback = append(fallback, candidate{rec: rec, slug: snippet.Slug})
		}
	}
	return assemble(related, fallback, limit)
}

// assemble orders related candidates before fallback ones and caps the total.
// Fallback order is slug-ascending so repeated calls with identical inputs
// return identical output.
func assemble(related, fallback []candidate, limit int) []Recommendation {
	sort.SliceStable(related, func(i, j int) bool {
		if related[i].score != related[j].score {
			return related[i].score > related[j].score
		}
		return related[i].slug < related[j].slug
	})
	sort.SliceStable(fallback, func(i, j int) bool {
		return fallback[i].slug < fallback[j].slug
	})

	out := make([]Recommendation, 0, limit)
	for _, c := range related {
		if len(out) >= limit {
			return out
		}
		out = append(out, c.rec)
	}
	for _, c := range fallback {
		if len(out) >= limit {
			return out
		}
		out = append(out, c.rec)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func relatedReason(categoryMatch bool, category string, shared []string) string {
	if categoryMatch {
		return "same category: " + category
	}
	named := shared
	if len(named) > 2 {
		named = named[:2]
	}
	return "shares tags: " + strings.Join(named, ", ")
}

func sharedTags(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, tag := range b {
		set[tag] = struct{}{}
	}
	var shared []string
	for _, tag := range a {
		if _, ok := set[tag]; ok {
			shared = append(shared, tag)
		}
	}
	return shared
}

func excludeSet(ids []string, self string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids)+1)
	set[self] = struct{}{}
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return set
}

func clampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	return limit
}
