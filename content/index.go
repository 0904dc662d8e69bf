package content

import (
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// Index is an in-memory, TTL'd view over the store's posts. It is the
// blog-post index the schema builder consults for series enrichment and
// the sitemap/feed handlers read from.
type Index struct {
	mu      sync.RWMutex
	posts   []Post
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewIndex creates an Index backed by the given Store.
func NewIndex(s *Store, ttl time.Duration) *Index {
	return &Index{store: s, ttl: ttl}
}

func (c *Index) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the index so the next read triggers a fresh load.
func (c *Index) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts after ensuring the index is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *Index) ensureLoaded() ([]Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return nil, err
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// All returns every non-draft post, newest first.
func (c *Index) All() ([]Post, error) {
	return c.ensureLoaded()
}

// ByPermalink returns the post published at the given permalink.
func (c *Index) ByPermalink(permalink string) (Post, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	want := strings.TrimRight(permalink, "/")
	for _, p := range posts {
		if strings.TrimRight(p.Permalink, "/") == want {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// BySeries returns the posts of one series, oldest first, so ItemList
// positions follow reading order.
func (c *Index) BySeries(name string) ([]Post, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	var out []Post
	for _, p := range posts {
		if strings.ToLower(strings.TrimSpace(p.Serie)) == normalized && p.Serie != "" {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// SeriesNames returns the distinct series names, sorted.
func (c *Index) SeriesNames() ([]string, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string)
	for _, p := range posts {
		if p.Serie != "" {
			seen[strings.ToLower(p.Serie)] = p.Serie
		}
	}
	names := make([]string, 0, len(seen))
	for _, name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
