// Package content loads markdown content files, parses their front matter,
// and maintains a queryable post index backed by SQLite.
package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
)

// wordsPerMinute is the reading-speed assumption for the reading-time estimate.
const wordsPerMinute = 200

// Post is one parsed content file: front matter plus derived fields.
type Post struct {
	Slug               string
	Permalink          string
	Title              string
	Description        string
	Date               string
	LastUpdatedAt      string
	Tags               []string
	Serie              string
	Draft              bool
	WordCount          int
	ReadingTimeMinutes float64
	FrontMatter        map[string]any
}

// Parse reads a markdown document, splits off its front matter, and derives
// the post fields. slug names the post when the front matter has no title.
func Parse(r io.Reader, slug string) (Post, error) {
	var matter map[string]any
	body, err := frontmatter.Parse(r, &matter)
	if err != nil {
		return Post{}, fmt.Errorf("content: parse front matter of %s: %w", slug, err)
	}
	if matter == nil {
		matter = map[string]any{}
	}

	p := Post{
		Slug:        slug,
		Title:       stringKey(matter, "title"),
		Description: stringKey(matter, "description"),
		Date:        stringKey(matter, "date"),
		Tags:        stringsKey(matter, "tags"),
		Serie:       stringKey(matter, "serie"),
		FrontMatter: matter,
	}
	if p.Title == "" {
		p.Title = slug
	}
	if lu := stringKey(matter, "last_update"); lu != "" {
		p.LastUpdatedAt = lu
	}
	if d, ok := matter["draft"].(bool); ok {
		p.Draft = d
	}
	if slugOverride := stringKey(matter, "slug"); slugOverride != "" {
		p.Slug = slugOverride
	}
	p.Permalink = "/blog/" + p.Slug + "/"

	p.WordCount = len(strings.Fields(string(body)))
	p.ReadingTimeMinutes = float64(p.WordCount) / wordsPerMinute
	return p, nil
}

func stringKey(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringsKey(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}
