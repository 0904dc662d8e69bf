package content

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)
	p := Post{
		Slug:        "hooks",
		Permalink:   "/blog/hooks/",
		Title:       "React hooks",
		Description: "intro",
		Date:        "2024-01-15",
		Tags:        []string{"React", "javascript"},
		Serie:       "React",
		WordCount:   400,
		FrontMatter: map[string]any{"title": "React hooks"},
	}
	if err := s.SavePost(p); err != nil {
		t.Fatalf("SavePost: %v", err)
	}

	got, err := s.GetPost("hooks")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "React hooks" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Serie != "React" {
		t.Errorf("Serie = %q", got.Serie)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "react" {
		t.Errorf("Tags = %v, want lowercased", got.Tags)
	}
	if got.WordCount != 400 {
		t.Errorf("WordCount = %d", got.WordCount)
	}
	if got.ReadingTimeMinutes != 2.0 {
		t.Errorf("ReadingTimeMinutes = %v, want 2", got.ReadingTimeMinutes)
	}
	if got.FrontMatter["title"] != "React hooks" {
		t.Errorf("FrontMatter = %v", got.FrontMatter)
	}
}

func TestSavePostUpsert(t *testing.T) {
	s := setupTestStore(t)
	p := Post{Slug: "hooks", Permalink: "/blog/hooks/", Title: "v1"}
	if err := s.SavePost(p); err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	p.Title = "v2"
	if err := s.SavePost(p); err != nil {
		t.Fatalf("SavePost update: %v", err)
	}

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	if posts[0].Title != "v2" {
		t.Errorf("Title = %q, want v2", posts[0].Title)
	}
}

func TestListPostsExcludesDrafts(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []Post{
		{Slug: "a", Permalink: "/blog/a/", Title: "A", Date: "2024-01-01"},
		{Slug: "b", Permalink: "/blog/b/", Title: "B", Date: "2024-02-01"},
		{Slug: "wip", Permalink: "/blog/wip/", Title: "WIP", Draft: true},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost %s: %v", p.Slug, err)
		}
	}

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	// date descending
	if posts[0].Slug != "b" || posts[1].Slug != "a" {
		t.Errorf("order = %s, %s", posts[0].Slug, posts[1].Slug)
	}

	if _, err := s.GetPost("wip"); err == nil {
		t.Error("GetPost returned a draft")
	}
}
