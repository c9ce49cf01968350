// File path: internal/content/filestore.go
package content

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FileStore reads catalog snapshots from a JSONL file produced by the content
// pipeline: one typed record per line. The file is the pipeline's output, not
// raw MDX; this store does no frontmatter parsing.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// record is the on-disk envelope. Field names follow each collection's own
// vocabulary (posts use title/summary, projects use name/description), so the
// envelope carries the union and sorting happens on Kind.
type record struct {
	Kind        Kind     `json:"kind"`
	Locale      string   `json:"locale"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title,omitempty"`
	Name        string   `json:"name,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Path        string   `json:"path,omitempty"`
}

// NewFileStore validates the path and returns a store. The file may not exist
// yet; Snapshot treats a missing file as an empty catalog.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path required")
	}
	return &FileStore{path: path}, nil
}

// Snapshot loads the whole catalog. Records keep file order within their
// collection, which downstream components rely on as "catalog order".
func (s *FileStore) Snapshot(ctx context.Context) (Catalog, error) {
	if s == nil {
		return Catalog{}, errors.New("catalog store not initialized")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	var catalog Catalog
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64<<10), 8<<20)
	line := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return Catalog{}, ctx.Err()
		default:
		}
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Catalog{}, fmt.Errorf("decode catalog line %d: %w", line, err)
		}
		switch rec.Kind {
		case KindPost:
			catalog.Posts = append(catalog.Posts, Post{
				Locale:   rec.Locale,
				Slug:     rec.Slug,
				Title:    rec.Title,
				Summary:  rec.Summary,
				Content:  rec.Content,
				Tags:     rec.Tags,
				Category: rec.Category,
			})
		case KindProject:
			catalog.Projects = append(catalog.Projects, Project{
				Locale:      rec.Locale,
				Slug:        rec.Slug,
				Name:        rec.Name,
				Description: rec.Description,
				Content:     rec.Content,
				Tags:        rec.Tags,
			})
		case KindPage:
			catalog.Pages = append(catalog.Pages, Page{
				Locale:  rec.Locale,
				Slug:    rec.Slug,
				Path:    rec.Path,
				Content: rec.Content,
			})
		case KindSnippet:
			catalog.Snippets = append(catalog.Snippets, Snippet{
				Locale:      rec.Locale,
				Slug:        rec.Slug,
				Title:       rec.Title,
				Description: rec.Description,
				Content:     rec.Content,
				Tags:        rec.Tags,
			})
		default:
			return Catalog{}, fmt.Errorf("catalog line %d: unknown kind %q", line, rec.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return Catalog{}, fmt.Errorf("scan catalog: %w", err)
	}
	return catalog, nil
}

// WriteCatalog replaces the file contents with the given catalog. Used by
// sync tooling; the serving path only reads.
func (s *FileStore) WriteCatalog(ctx context.Context, catalog Catalog) error {
	if s == nil {
		return errors.New("catalog store not initialized")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	write := func(rec record) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return enc.Encode(rec)
	}
	for _, p := range catalog.Posts {
		rec := record{Kind: KindPost, Locale: p.Locale, Slug: p.Slug, Title: p.Title, Summary: p.Summary, Content: p.Content, Tags: p.Tags, Category: p.Category}
		if err := write(rec); err != nil {
			return fmt.Errorf("encode post: %w", err)
		}
	}
	for _, p := range catalog.Projects {
		rec := record{Kind: KindProject, Locale: p.Locale, Slug: p.Slug, Name: p.Name, Description: p.Description, Content: p.Content, Tags: p.Tags}
		if err := write(rec); err != nil {
			return fmt.Errorf("encode project: %w", err)
		}
	}
	for _, p := range catalog.Pages {
		rec := record{Kind: KindPage, Locale: p.Locale, Slug: p.Slug, Path: p.Path, Content: p.Content}
		if err := write(rec); err != nil {
			return fmt.Errorf("encode page: %w", err)
		}
	}
	for _, sn := range catalog.Snippets {
		rec := record{Kind: KindSnippet, Locale: sn.Locale, Slug: sn.Slug, Title: sn.Title, Description: sn.Description, Content: sn.Content, Tags: sn.Tags}
		if err := write(rec); err != nil {
			return fmt.Errorf("encode snippet: %w", err)
		}
	}
	return nil
}
