package seoforge

import (
	"strings"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://site.com", "blog/post", "https://site.com/blog/post"},
		{"https://site.com/", "/blog/post", "https://site.com/blog/post"},
		{"https://site.com//", "//blog//post", "https://site.com/blog/post"},
		{"https://site.com", "/", "https://site.com/"},
		{"site.com/base", "page", "site.com/base/page"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.base, tt.path); got != tt.want {
			t.Errorf("NormalizeURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestNormalizeURLEmptyInput(t *testing.T) {
	if got := NormalizeURL("https://site.com", ""); got != "https://site.com" {
		t.Errorf("empty path: got %q, want base back", got)
	}
	if got := NormalizeURL("", "/blog/"); got != "/blog/" {
		t.Errorf("empty base: got %q, want path back", got)
	}
	if got := NormalizeURL("", ""); got != "" {
		t.Errorf("both empty: got %q, want empty", got)
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := [][2]string{
		{"https://site.com//", "//blog//my-post//"},
		{"http://x.org", "a/b/c"},
		{"https://site.com/base/", "/page/"},
	}
	for _, in := range inputs {
		once := NormalizeURL(in[0], in[1])
		twice := NormalizeURL(once, "")
		if once != twice {
			t.Errorf("not idempotent: %q then %q", once, twice)
		}
	}
}

func TestCanonicalIDNoTrailingSlash(t *testing.T) {
	site := SiteConfig{URL: "https://site.com"}
	paths := []string{"/", "/blog/", "/blog/my-post/", "/blog/my-post", "/series/"}
	for _, p := range paths {
		id := CanonicalID(site, p)
		if strings.HasSuffix(id, "/") {
			t.Errorf("CanonicalID(%q) = %q ends with a slash", p, id)
		}
		if strings.Contains(strings.TrimPrefix(id, "https://"), "//") {
			t.Errorf("CanonicalID(%q) = %q contains a double slash", p, id)
		}
	}
}

func TestCanonicalURLTrailingSlash(t *testing.T) {
	site := SiteConfig{URL: "https://site.com"}

	if got := CanonicalURL(site, "/blog/my-post/"); got != "https://site.com/blog/my-post/" {
		t.Errorf("CanonicalURL = %q, want trailing slash", got)
	}
	// bare-domain root: the TLD must not read as a file extension
	if got := CanonicalURL(site, "/"); got != "https://site.com/" {
		t.Errorf("CanonicalURL root = %q", got)
	}
	if got := CanonicalURL(site, "/blog"); got != "https://site.com/blog/" {
		t.Errorf("CanonicalURL = %q, want slash appended", got)
	}
	// no slash appended after a file extension
	if got := CanonicalURL(site, "/sitemap.xml"); got != "https://site.com/sitemap.xml" {
		t.Errorf("CanonicalURL file = %q, want no trailing slash", got)
	}
	if strings.HasSuffix(CanonicalURL(site, "/blog/"), "//") {
		t.Error("CanonicalURL must end with exactly one slash")
	}
}

func TestAbsolutize(t *testing.T) {
	site := SiteConfig{URL: "https://site.com"}
	if got := absolutize(site, "/img/logo.png"); got != "https://site.com/img/logo.png" {
		t.Errorf("absolutize relative = %q", got)
	}
	if got := absolutize(site, "https://cdn.com/x.png"); got != "https://cdn.com/x.png" {
		t.Errorf("absolutize absolute = %q, want passthrough", got)
	}
	if got := absolutize(site, ""); got != "" {
		t.Errorf("absolutize empty = %q, want empty", got)
	}
}
