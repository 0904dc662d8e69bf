package seoforge

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func testSite() SiteConfig {
	cfg := SiteConfig{
		Title:         "Site",
		URL:           "https://site.com",
		Description:   "Site description",
		DefaultLocale: "fr-FR",
		ThemeImage:    "/img/social-card.png",
	}
	cfg.setDefaults()
	return cfg
}

func testResolver() *Resolver {
	r := NewResolver(testSite(), nil)
	r.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func TestTitleCascade(t *testing.T) {
	r := testResolver()
	site := testSite()

	// blog title wins over page title
	ctx := PageContext{
		Site:     site,
		BlogPost: &BlogPostMeta{Title: "Blog title"},
		Page:     &PageMeta{Title: "Page title"},
	}
	if got := r.Title(ctx); got != "Blog title" {
		t.Errorf("Title = %q, want blog title", got)
	}

	// page title when no blog post
	ctx = PageContext{Site: site, Page: &PageMeta{Title: "Page title"}}
	if got := r.Title(ctx); got != "Page title" {
		t.Errorf("Title = %q, want page title", got)
	}

	// front matter before site fallback
	ctx = PageContext{Site: site, Page: &PageMeta{FrontMatter: FrontMatter{"title": "FM title"}}}
	if got := r.Title(ctx); got != "FM title" {
		t.Errorf("Title = %q, want front-matter title", got)
	}

	// site title when nothing set
	ctx = PageContext{Site: site}
	if got := r.Title(ctx); got != "Site" {
		t.Errorf("Title = %q, want site title", got)
	}
}

func TestDescriptionFallback(t *testing.T) {
	r := NewResolver(SiteConfig{Title: "Site", URL: "https://site.com"}, nil)
	if got := r.Description(PageContext{}); got != defaultDescription {
		t.Errorf("Description = %q, want the literal default", got)
	}
}

func TestKeywordsDedup(t *testing.T) {
	r := testResolver()
	ctx := PageContext{
		Site: testSite(),
		BlogPost: &BlogPostMeta{FrontMatter: FrontMatter{
			"keywords": []any{"React", "react", "Docusaurus"},
		}},
	}
	got, text := r.Keywords(ctx)
	want := []string{"React", "Docusaurus"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
	if text != "React, Docusaurus" {
		t.Errorf("KeywordsText = %q", text)
	}
}

func TestKeywordsFiltering(t *testing.T) {
	r := testResolver()
	long := strings.Repeat("x", 51)
	ctx := PageContext{
		Site: testSite(),
		BlogPost: &BlogPostMeta{FrontMatter: FrontMatter{
			"keywords": []any{"a", "2024", long, "valid"},
			"tags":     []any{"valid", "Go"},
		}},
	}
	got, _ := r.Keywords(ctx)
	want := []string{"valid", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestKeywordsCap(t *testing.T) {
	r := testResolver()
	var kws []any
	for i := 0; i < 30; i++ {
		kws = append(kws, "keyword-"+string(rune('a'+i)))
	}
	ctx := PageContext{
		Site:     testSite(),
		BlogPost: &BlogPostMeta{FrontMatter: FrontMatter{"keywords": kws}},
	}
	got, _ := r.Keywords(ctx)
	if len(got) != maxKeywords {
		t.Errorf("len(Keywords) = %d, want %d", len(got), maxKeywords)
	}
}

func TestFormatSchemaDate(t *testing.T) {
	r := testResolver()

	// ISO values pass through unchanged
	if got := r.FormatSchemaDate("2024-01-01T00:00:00Z"); got != "2024-01-01T00:00:00Z" {
		t.Errorf("ISO passthrough = %q", got)
	}
	// plain dates are normalized
	if got := r.FormatSchemaDate("2024-01-01"); got != "2024-01-01T00:00:00Z" {
		t.Errorf("plain date = %q", got)
	}
	// garbage falls back to the clock, never panics
	if got := r.FormatSchemaDate("not a date"); got != "2024-06-15T12:00:00Z" {
		t.Errorf("fallback = %q, want the pinned now", got)
	}
}

func TestPublishedAndModifiedDates(t *testing.T) {
	r := testResolver()
	ctx := PageContext{
		Site: testSite(),
		BlogPost: &BlogPostMeta{
			Date:          "2024-01-01",
			LastUpdatedAt: "2024-02-01",
		},
	}
	if got := r.PublishedDate(ctx); got != "2024-01-01T00:00:00Z" {
		t.Errorf("PublishedDate = %q", got)
	}
	if got := r.ModifiedDate(ctx); got != "2024-02-01T00:00:00Z" {
		t.Errorf("ModifiedDate = %q", got)
	}

	// modified falls back to the published cascade
	ctx.BlogPost.LastUpdatedAt = ""
	if got := r.ModifiedDate(ctx); got != "2024-01-01T00:00:00Z" {
		t.Errorf("ModifiedDate fallback = %q, want published date", got)
	}
}

func TestIsRecentArticle(t *testing.T) {
	r := testResolver()
	if !r.IsRecentArticle("2024-06-01") {
		t.Error("two weeks old should be recent")
	}
	if r.IsRecentArticle("2024-01-01") {
		t.Error("six months old should not be recent")
	}
	if r.IsRecentArticle("garbage") {
		t.Error("unparsable date should not be recent")
	}
}

func TestPrimaryAuthorNormalization(t *testing.T) {
	r := NewResolver(testSite(), AuthorDirectory{
		"jdoe": {Name: "jOHN DOE", URL: "https://jdoe.dev"},
	})
	ctx := PageContext{
		Site:     testSite(),
		BlogPost: &BlogPostMeta{FrontMatter: FrontMatter{"authors": []any{"jdoe"}}},
	}
	got := r.PrimaryAuthor(ctx)
	if got.Name != "John doe" {
		t.Errorf("Name = %q, want first letter upper, rest lower", got.Name)
	}
	if got.URL != "https://jdoe.dev" {
		t.Errorf("URL = %q", got.URL)
	}
}

func TestPrimaryAuthorStaticFallbackDirectory(t *testing.T) {
	r := testResolver()
	ctx := PageContext{
		Site:     testSite(),
		BlogPost: &BlogPostMeta{FrontMatter: FrontMatter{"authors": "docux"}},
	}
	got := r.PrimaryAuthor(ctx)
	if got.Name != "Docux" {
		t.Errorf("Name = %q, want Docux from the static directory", got.Name)
	}
}

func TestPrimaryAuthorUnknownKey(t *testing.T) {
	r := testResolver()
	ctx := PageContext{
		Site:     testSite(),
		BlogPost: &BlogPostMeta{FrontMatter: FrontMatter{"authors": []any{"gHOST"}}},
	}
	got := r.PrimaryAuthor(ctx)
	if got.Name != "Ghost" {
		t.Errorf("Name = %q, want the normalized key itself", got.Name)
	}
}

func TestPrimaryAuthorSynthetic(t *testing.T) {
	r := testResolver()
	got := r.PrimaryAuthor(PageContext{Site: testSite()})
	// the synthetic site author keeps the site title verbatim
	if got.Name != "Site" {
		t.Errorf("Name = %q, want the site title verbatim", got.Name)
	}
	if got.ImageURL != "https://site.com/img/social-card.png" {
		t.Errorf("ImageURL = %q, want the absolutized theme image", got.ImageURL)
	}
}

func TestPageAuthorScalarKey(t *testing.T) {
	r := testResolver()
	ctx := PageContext{
		Site: testSite(),
		Page: &PageMeta{FrontMatter: FrontMatter{"author": "docux"}},
	}
	if got := r.PrimaryAuthor(ctx); got.Name != "Docux" {
		t.Errorf("Name = %q, want author resolved from the scalar key", got.Name)
	}
}

func TestLanguage(t *testing.T) {
	r := testResolver()

	tests := []struct {
		fm   FrontMatter
		want string
	}{
		{FrontMatter{"inLanguage": "en-GB"}, "en-GB"},
		{FrontMatter{"inLanguage": "en"}, "en-US"},
		{FrontMatter{"lang": "fr"}, "fr-FR"},
		{FrontMatter{"lang": "xx"}, "xx"},
		{FrontMatter{}, "fr-FR"},
	}
	for _, tt := range tests {
		ctx := PageContext{Site: testSite(), BlogPost: &BlogPostMeta{FrontMatter: tt.fm}}
		if got := r.Language(ctx); got != tt.want {
			t.Errorf("Language(%v) = %q, want %q", tt.fm, got, tt.want)
		}
	}
}

func TestResolveCanonicalPair(t *testing.T) {
	r := testResolver()
	md := r.Resolve(PageContext{
		Pathname: "/blog/my-post/",
		Site:     testSite(),
		BlogPost: &BlogPostMeta{Title: "Hello"},
	})
	if md.CanonicalID != "https://site.com/blog/my-post" {
		t.Errorf("CanonicalID = %q", md.CanonicalID)
	}
	if md.CanonicalURL != "https://site.com/blog/my-post/" {
		t.Errorf("CanonicalURL = %q", md.CanonicalURL)
	}
}
