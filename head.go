package seoforge

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// SerializeSchemas marshals the schema set to the JSON-LD payloads for the
// page head, one JSON document per schema. Schemas that fail to marshal
// are dropped rather than breaking the head.
func SerializeSchemas(schemas []Schema) []string {
	out := make([]string, 0, len(schemas))
	for _, s := range schemas {
		b, err := json.Marshal(s)
		if err != nil {
			continue
		}
		out = append(out, string(b))
	}
	return out
}

// HeadTags returns a templ component that renders the page's meta tags and
// JSON-LD scripts, for inclusion in a <head> template.
func HeadTags(meta MetaTags, schemas []Schema) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, meta, schemas)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeHead(b *strings.Builder, meta MetaTags, schemas []Schema) {
	tag := func(markup string, value string) {
		if value != "" {
			b.WriteString(strings.Replace(markup, "%s", html.EscapeString(value), 1))
			b.WriteByte('\n')
		}
	}
	tag("<title>%s</title>", meta.Title)
	tag(`<meta name="description" content="%s"/>`, meta.Description)
	tag(`<meta name="keywords" content="%s"/>`, meta.Keywords)
	tag(`<link rel="canonical" href="%s"/>`, meta.Canonical)
	tag(`<meta property="og:title" content="%s"/>`, meta.OGTitle)
	tag(`<meta property="og:description" content="%s"/>`, meta.OGDescription)
	tag(`<meta property="og:url" content="%s"/>`, meta.OGURL)
	tag(`<meta property="og:type" content="%s"/>`, meta.OGType)
	tag(`<meta property="og:site_name" content="%s"/>`, meta.OGSiteName)
	tag(`<meta property="og:locale" content="%s"/>`, meta.OGLocale)
	tag(`<meta property="og:image" content="%s"/>`, meta.OGImage)
	tag(`<meta property="og:image:width" content="%s"/>`, meta.OGImageWidth)
	tag(`<meta property="og:image:height" content="%s"/>`, meta.OGImageHeight)
	tag(`<meta name="twitter:card" content="%s"/>`, meta.TwitterCard)
	tag(`<meta name="twitter:title" content="%s"/>`, meta.TwitterTitle)
	tag(`<meta name="twitter:description" content="%s"/>`, meta.TwitterDescription)
	tag(`<meta name="twitter:image" content="%s"/>`, meta.TwitterImage)
	tag(`<meta property="article:published_time" content="%s"/>`, meta.ArticlePublished)
	tag(`<meta property="article:modified_time" content="%s"/>`, meta.ArticleModified)
	tag(`<meta property="article:author" content="%s"/>`, meta.ArticleAuthor)

	for _, payload := range SerializeSchemas(schemas) {
		// JSON-LD payloads must not be HTML-escaped; json.Marshal already
		// escapes the characters that could close the script element.
		b.WriteString(`<script type="application/ld+json">`)
		b.WriteString(payload)
		b.WriteString("</script>\n")
	}
}
