package seoforge

import "strings"

// PageContext carries everything available at resolution time for one page.
// Exactly one of BlogPost / Page is set for content pages; both may be nil
// for framework-generated pages (home, listings). Immutable per call.
type PageContext struct {
	Pathname string
	Search   string
	Site     SiteConfig
	BlogPost *BlogPostMeta
	Page     *PageMeta
}

// FrontMatter returns whichever front matter is attached to the context,
// blog post first. Never nil.
func (ctx PageContext) FrontMatter() FrontMatter {
	if ctx.BlogPost != nil && ctx.BlogPost.FrontMatter != nil {
		return ctx.BlogPost.FrontMatter
	}
	if ctx.Page != nil && ctx.Page.FrontMatter != nil {
		return ctx.Page.FrontMatter
	}
	return FrontMatter{}
}

// BlogPostMeta is the metadata the content pipeline computes for a blog post:
// front matter plus derived fields.
type BlogPostMeta struct {
	Title              string
	Description        string
	Permalink          string
	Date               string // ISO 8601 or YYYY-MM-DD
	LastUpdatedAt      string
	WordCount          int
	ReadingTimeMinutes float64
	FrontMatter        FrontMatter
}

// PageMeta is the metadata available for a non-post page.
type PageMeta struct {
	Title       string
	Description string
	Permalink   string
	FrontMatter FrontMatter
}

// FrontMatter is the raw key/value metadata block of a content file.
// No key is required; consumers fall through to the next priority source
// when a key is absent.
type FrontMatter map[string]any

// String returns the trimmed string value for key, or "" when absent or
// not a string.
func (fm FrontMatter) String(key string) string {
	if fm == nil {
		return ""
	}
	if s, ok := fm[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Strings returns the value for key as a string slice. Scalars become a
// one-element slice; non-string list elements are skipped.
func (fm FrontMatter) Strings(key string) []string {
	if fm == nil {
		return nil
	}
	switch v := fm[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []string:
		return v
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

// Float returns the numeric value for key, handling the types YAML and JSON
// decoders produce. ok is false when the key is absent or non-numeric.
func (fm FrontMatter) Float(key string) (float64, bool) {
	if fm == nil {
		return 0, false
	}
	switch v := fm[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}

// Maps returns the value for key as a slice of nested mappings.
func (fm FrontMatter) Maps(key string) []map[string]any {
	if fm == nil {
		return nil
	}
	switch v := fm[key].(type) {
	case []map[string]any:
		return v
	case []any:
		var out []map[string]any
		for _, e := range v {
			switch m := e.(type) {
			case map[string]any:
				out = append(out, m)
			case map[any]any:
				conv := make(map[string]any, len(m))
				for k, val := range m {
					if ks, ok := k.(string); ok {
						conv[ks] = val
					}
				}
				out = append(out, conv)
			}
		}
		return out
	}
	return nil
}

// Has reports whether key is present.
func (fm FrontMatter) Has(key string) bool {
	_, ok := fm[key]
	return ok
}

// AuthorRecord describes one content author.
type AuthorRecord struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title,omitempty"`
	URL      string `yaml:"url,omitempty"`
	ImageURL string `yaml:"image_url,omitempty"`
}

// AuthorDirectory maps the author keys used in front matter to records.
type AuthorDirectory map[string]AuthorRecord

// ResolvedMetadata is the output of the resolver: every field the schema
// builder and the meta-tag builder need, fully cascaded. Never mutated
// after construction.
type ResolvedMetadata struct {
	Title          string
	Description    string
	CanonicalID    string
	CanonicalURL   string
	ImageURL       string
	PrimaryAuthor  AuthorRecord
	DatePublished  string
	DateModified   string
	Keywords       []string
	KeywordsText   string
	ArticleSection string
	Language       string
}

// SchemaType is a schema.org type tag.
type SchemaType string

// Schema types the builder knows how to emit.
const (
	TypeWebSite             SchemaType = "WebSite"
	TypeWebPage             SchemaType = "WebPage"
	TypeBlogPosting         SchemaType = "BlogPosting"
	TypeCollectionPage      SchemaType = "CollectionPage"
	TypeHowTo               SchemaType = "HowTo"
	TypeTechArticle         SchemaType = "TechArticle"
	TypeFAQPage             SchemaType = "FAQPage"
	TypeSoftwareApplication SchemaType = "SoftwareApplication"
	TypeCourse              SchemaType = "Course"
	TypeAboutPage           SchemaType = "AboutPage"
	TypeItemListPage        SchemaType = "ItemListPage"
)

// schemaContext is the @context value on every emitted schema.
const schemaContext = "https://schema.org"

// Schema is one JSON-LD object. Built fresh per page, never mutated after
// construction; repair returns new objects instead of patching in place.
type Schema map[string]any

// Type returns the @type value, or "".
func (s Schema) Type() string {
	t, _ := s["@type"].(string)
	return t
}

// ID returns the @id value, or "".
func (s Schema) ID() string {
	id, _ := s["@id"].(string)
	return id
}

// baseID returns the @id with any #fragment suffix removed.
func (s Schema) baseID() string {
	id := s.ID()
	if i := strings.IndexByte(id, '#'); i >= 0 {
		return id[:i]
	}
	return id
}
