package seoforge

import (
	"context"
	"strings"
	"testing"
)

func renderHead(t *testing.T, meta MetaTags, schemas []Schema) string {
	t.Helper()
	var b strings.Builder
	if err := HeadTags(meta, schemas).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestHeadTags(t *testing.T) {
	meta := MetaTags{
		Title:       "My <Post>",
		Description: "A \"quoted\" description",
		Canonical:   "https://site.com/blog/my-post/",
		OGType:      "article",
	}
	schemas := []Schema{
		{"@type": "BlogPosting", "@id": "https://site.com/blog/my-post", "name": "My Post"},
	}
	out := renderHead(t, meta, schemas)

	if !strings.Contains(out, "<title>My &lt;Post&gt;</title>") {
		t.Errorf("title not escaped:\n%s", out)
	}
	if !strings.Contains(out, `content="A &#34;quoted&#34; description"`) {
		t.Errorf("description not escaped:\n%s", out)
	}
	if !strings.Contains(out, `<link rel="canonical" href="https://site.com/blog/my-post/"/>`) {
		t.Errorf("canonical missing:\n%s", out)
	}
	if !strings.Contains(out, `<script type="application/ld+json">`) {
		t.Errorf("json-ld script missing:\n%s", out)
	}
	if !strings.Contains(out, `"@type":"BlogPosting"`) {
		t.Errorf("schema payload missing:\n%s", out)
	}
}

func TestHeadTagsSkipsEmpty(t *testing.T) {
	out := renderHead(t, MetaTags{Title: "Only title"}, nil)
	if strings.Contains(out, "og:image") {
		t.Errorf("empty og:image emitted:\n%s", out)
	}
	if strings.Contains(out, "article:published_time") {
		t.Errorf("empty article tag emitted:\n%s", out)
	}
	if strings.Contains(out, "<script") {
		t.Errorf("script emitted with no schemas:\n%s", out)
	}
}

func TestSerializeSchemasOrder(t *testing.T) {
	payloads := SerializeSchemas([]Schema{
		{"@type": "WebSite"},
		{"@type": "BreadcrumbList"},
	})
	if len(payloads) != 2 {
		t.Fatalf("len = %d", len(payloads))
	}
	if !strings.Contains(payloads[0], "WebSite") || !strings.Contains(payloads[1], "BreadcrumbList") {
		t.Errorf("order not preserved: %v", payloads)
	}
}
