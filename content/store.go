package content

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding the parsed content index.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY, synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    permalink TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    last_updated TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    serie TEXT NOT NULL DEFAULT '',
    word_count INTEGER NOT NULL DEFAULT 0,
    front_matter TEXT NOT NULL DEFAULT '{}',
    draft INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

// SavePost inserts or updates a post.
func (s *Store) SavePost(p Post) error {
	fm, err := json.Marshal(p.FrontMatter)
	if err != nil {
		return err
	}
	draft := 0
	if p.Draft {
		draft = 1
	}
	_, err = s.db.Exec(`
INSERT INTO posts (slug, permalink, title, description, date, last_updated, tags, serie, word_count, front_matter, draft)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    permalink=excluded.permalink, title=excluded.title,
    description=excluded.description, date=excluded.date,
    last_updated=excluded.last_updated, tags=excluded.tags,
    serie=excluded.serie, word_count=excluded.word_count,
    front_matter=excluded.front_matter, draft=excluded.draft`,
		p.Slug, p.Permalink, p.Title, p.Description, p.Date, p.LastUpdatedAt,
		","+strings.ToLower(strings.Join(p.Tags, ","))+",", p.Serie,
		p.WordCount, string(fm), draft)
	return err
}

// ListPosts returns all non-draft posts ordered by date descending.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT slug, permalink, title, description, date, last_updated, tags, serie, word_count, front_matter FROM posts WHERE draft = 0 ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		var tags, fm string
		if err := rows.Scan(&p.Slug, &p.Permalink, &p.Title, &p.Description,
			&p.Date, &p.LastUpdatedAt, &tags, &p.Serie, &p.WordCount, &fm); err != nil {
			return nil, err
		}
		p.Tags = parseTags(tags)
		p.ReadingTimeMinutes = float64(p.WordCount) / wordsPerMinute
		if err := json.Unmarshal([]byte(fm), &p.FrontMatter); err != nil {
			p.FrontMatter = map[string]any{}
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single non-draft post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT slug, permalink, title, description, date, last_updated, tags, serie, word_count, front_matter FROM posts WHERE draft = 0 AND slug = ?`, slug)
	var p Post
	var tags, fm string
	if err := row.Scan(&p.Slug, &p.Permalink, &p.Title, &p.Description,
		&p.Date, &p.LastUpdatedAt, &tags, &p.Serie, &p.WordCount, &fm); err != nil {
		return Post{}, err
	}
	p.Tags = parseTags(tags)
	p.ReadingTimeMinutes = float64(p.WordCount) / wordsPerMinute
	if err := json.Unmarshal([]byte(fm), &p.FrontMatter); err != nil {
		p.FrontMatter = map[string]any{}
	}
	return p, nil
}

func parseTags(csv string) []string {
	var out []string
	for _, t := range strings.Split(strings.Trim(csv, ","), ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
