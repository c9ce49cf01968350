// File path: internal/sqlite/store.go

// Package sqlite provides a content catalog provider backed by SQLite. The
// content pipeline writes the tables; the server only reads snapshots.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/isyuricunha/website-sub003/internal/content"
)

// Store wraps a pooled sqlx.DB connection to the SQLite catalog.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided path.
// Pool settings come from the CATALOG_DB_* environment; the schema is
// migrated on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingTimeout := cfg.BusyTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("sqlite store not initialised")
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		locale TEXT NOT NULL,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (locale, slug)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		locale TEXT NOT NULL,
		slug TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (locale, slug)
	)`,
	`CREATE TABLE IF NOT EXISTS pages (
		locale TEXT NOT NULL,
		slug TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (locale, slug)
	)`,
	`CREATE TABLE IF NOT EXISTS snippets (
		locale TEXT NOT NULL,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (locale, slug)
	)`,
}

// Snapshot loads the full catalog. Row order follows insertion order
// (rowid), which downstream components treat as catalog order.
func (s *Store) Snapshot(ctx context.Context) (content.Catalog, error) {
	if s == nil || s.db == nil {
		return content.Catalog{}, errors.New("sqlite store not initialised")
	}
	var catalog content.Catalog

	var posts []postRow
	if err := s.db.SelectContext(ctx, &posts, `SELECT locale, slug, title, summary, content, tags, category FROM posts ORDER BY rowid`); err != nil {
		return content.Catalog{}, fmt.Errorf("select posts: %w", err)
	}
	for _, row := range posts {
		catalog.Posts = append(catalog.Posts, content.Post{
			Locale:   row.Locale,
			Slug:     row.Slug,
			Title:    row.Title,
			Summary:  row.Summary,
			Content:  row.Content,
			Tags:     splitTags(row.Tags),
			Category: row.Category,
		})
	}

	var projects []projectRow
	if err := s.db.SelectContext(ctx, &projects, `SELECT locale, slug, name, description, content, tags FROM projects ORDER BY rowid`); err != nil {
		return content.Catalog{}, fmt.Errorf("select projects: %w", err)
	}
	for _, row := range projects {
		catalog.Projects = append(catalog.Projects, content.Project{
			Locale:      row.Locale,
			Slug:        row.Slug,
			Name:        row.Name,
			Description: row.Description,
			Content:     row.Content,
			Tags:        splitTags(row.Tags),
		})
	}

	var pages []pageRow
	if err := s.db.SelectContext(ctx, &pages, `SELECT locale, slug, path, content FROM pages ORDER BY rowid`); err != nil {
		return content.Catalog{}, fmt.Errorf("select pages: %w", err)
	}
	for _, row := range pages {
		catalog.Pages = append(catalog.Pages, content.Page{
			Locale:  row.Locale,
			Slug:    row.Slug,
			Path:    row.Path,
			Content: row.Content,
		})
	}

	var snippets []snippetRow
	if err := s.db.SelectContext(ctx, &snippets, `SELECT locale, slug, title, description, content, tags FROM snippets ORDER BY rowid`); err != nil {
		return content.Catalog{}, fmt.Errorf("select snippets: %w", err)
	}
	for _, row := range snippets {
		catalog.Snippets = append(catalog.Snippets, content.Snippet{
			Locale:      row.Locale,
			Slug:        row.Slug,
			Title:       row.Title,
			Description: row.Description,
			Content:     row.Content,
			Tags:        splitTags(row.Tags),
		})
	}

	return catalog, nil
}

// ReplaceCatalog overwrites every table with the given catalog inside one
// transaction. Used by sync tooling.
func (s *Store) ReplaceCatalog(ctx context.Context, catalog content.Catalog) error {
	if s == nil || s.db == nil {
		return errors.New("sqlite store not initialised")
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"posts", "projects", "pages", "snippets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, p := range catalog.Posts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO posts (locale, slug, title, summary, content, tags, category) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Locale, p.Slug, p.Title, p.Summary, p.Content, joinTags(p.Tags), p.Category); err != nil {
			return fmt.Errorf("insert post %s: %w", p.Slug, err)
		}
	}
	for _, p := range catalog.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (locale, slug, name, description, content, tags) VALUES (?, ?, ?, ?, ?, ?)`,
			p.Locale, p.Slug, p.Name, p.Description, p.Content, joinTags(p.Tags)); err != nil {
			return fmt.Errorf("insert project %s: %w", p.Slug, err)
		}
	}
	for _, p := range catalog.Pages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pages (locale, slug, path, content) VALUES (?, ?, ?, ?)`,
			p.Locale, p.Slug, p.Path, p.Content); err != nil {
			return fmt.Errorf("insert page %s: %w", p.Slug, err)
		}
	}
	for _, sn := range catalog.Snippets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snippets (locale, slug, title, description, content, tags) VALUES (?, ?, ?, ?, ?, ?)`,
			sn.Locale, sn.Slug, sn.Title, sn.Description, sn.Content, joinTags(sn.Tags)); err != nil {
			return fmt.Errorf("insert snippet %s: %w", sn.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

type postRow struct {
	Locale   string `db:"locale"`
	Slug     string `db:"slug"`
	Title    string `db:"title"`
	Summary  string `db:"summary"`
	Content  string `db:"content"`
	Tags     string `db:"tags"`
	Category string `db:"category"`
}

type projectRow struct {
	Locale      string `db:"locale"`
	Slug        string `db:"slug"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Content     string `db:"content"`
	Tags        string `db:"tags"`
}

type pageRow struct {
	Locale  string `db:"locale"`
	Slug    string `db:"slug"`
	Path    string `db:"path"`
	Content string `db:"content"`
}

type snippetRow struct {
	Locale      string `db:"locale"`
	Slug        string `db:"slug"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Content     string `db:"content"`
	Tags        string `db:"tags"`
}

const tagSeparator = ""

func joinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, tagSeparator)
}
