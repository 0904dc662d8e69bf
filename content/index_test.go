package content

import (
	"errors"
	"testing"
	"time"
)

func setupTestIndex(t *testing.T) (*Store, *Index) {
	t.Helper()
	s := setupTestStore(t)
	for _, p := range []Post{
		{Slug: "intro", Permalink: "/blog/intro/", Title: "Intro", Date: "2024-01-01", Serie: "React"},
		{Slug: "hooks", Permalink: "/blog/hooks/", Title: "Hooks", Date: "2024-02-01", Serie: "react"},
		{Slug: "docker", Permalink: "/blog/docker/", Title: "Docker", Date: "2024-03-01", Serie: "DevOps"},
		{Slug: "solo", Permalink: "/blog/solo/", Title: "Solo", Date: "2024-04-01"},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost %s: %v", p.Slug, err)
		}
	}
	return s, NewIndex(s, time.Minute)
}

func TestIndexAll(t *testing.T) {
	_, idx := setupTestIndex(t)
	posts, err := idx.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(posts) != 4 {
		t.Fatalf("len = %d, want 4", len(posts))
	}
	if posts[0].Slug != "solo" {
		t.Errorf("first = %q, want newest", posts[0].Slug)
	}
}

func TestIndexByPermalink(t *testing.T) {
	_, idx := setupTestIndex(t)

	p, err := idx.ByPermalink("/blog/hooks/")
	if err != nil {
		t.Fatalf("ByPermalink: %v", err)
	}
	if p.Slug != "hooks" {
		t.Errorf("Slug = %q", p.Slug)
	}

	// trailing slash must not matter
	if _, err := idx.ByPermalink("/blog/hooks"); err != nil {
		t.Errorf("ByPermalink without slash: %v", err)
	}

	if _, err := idx.ByPermalink("/blog/nope/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIndexBySeries(t *testing.T) {
	_, idx := setupTestIndex(t)

	posts, err := idx.BySeries("REACT")
	if err != nil {
		t.Fatalf("BySeries: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len = %d, want 2 (case-insensitive match)", len(posts))
	}
	// oldest first
	if posts[0].Slug != "intro" || posts[1].Slug != "hooks" {
		t.Errorf("order = %s, %s", posts[0].Slug, posts[1].Slug)
	}
}

func TestIndexSeriesNames(t *testing.T) {
	_, idx := setupTestIndex(t)
	names, err := idx.SeriesNames()
	if err != nil {
		t.Fatalf("SeriesNames: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v, want 2 distinct series", names)
	}
}

func TestIndexInvalidate(t *testing.T) {
	s, idx := setupTestIndex(t)
	if _, err := idx.All(); err != nil {
		t.Fatalf("All: %v", err)
	}

	if err := s.SavePost(Post{Slug: "late", Permalink: "/blog/late/", Title: "Late", Date: "2024-05-01"}); err != nil {
		t.Fatalf("SavePost: %v", err)
	}

	// still cached
	posts, _ := idx.All()
	if len(posts) != 4 {
		t.Fatalf("len = %d before invalidate, want cached 4", len(posts))
	}

	idx.Invalidate()
	posts, err := idx.All()
	if err != nil {
		t.Fatalf("All after invalidate: %v", err)
	}
	if len(posts) != 5 {
		t.Errorf("len = %d after invalidate, want 5", len(posts))
	}
}
