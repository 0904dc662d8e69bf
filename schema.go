package seoforge

import (
	"strings"

	"github.com/eringen/seoforge/content"
)

// PostIndex is the blog-post index the builder consults for series and
// collection enrichment. *content.Index satisfies it; it may be nil, in
// which case the hard-coded fallback entries are used.
type PostIndex interface {
	All() ([]content.Post, error)
	BySeries(name string) ([]content.Post, error)
	SeriesNames() ([]string, error)
}

// EnrichmentFn layers the type-specific properties of one schema type onto
// a base schema. Implementations return the enriched schema; they never
// fail, absent inputs simply leave properties off.
type EnrichmentFn func(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema

// Builder assembles the JSON-LD schema set for a page from its classified
// type and resolved metadata.
type Builder struct {
	site   SiteConfig
	res    *Resolver
	index  PostIndex
	enrich map[SchemaType]EnrichmentFn
}

// NewBuilder creates a Builder. index may be nil; series enrichment then
// falls back to its default entries.
func NewBuilder(site SiteConfig, res *Resolver, index PostIndex) *Builder {
	b := &Builder{site: site, res: res, index: index}
	b.enrich = map[SchemaType]EnrichmentFn{
		TypeWebSite:             enrichWebSite,
		TypeBlogPosting:         enrichBlogPosting,
		TypeCollectionPage:      enrichCollectionPage,
		TypeHowTo:               enrichHowTo,
		TypeTechArticle:         enrichTechArticle,
		TypeFAQPage:             enrichFAQPage,
		TypeSoftwareApplication: enrichSoftwareApplication,
		TypeCourse:              enrichCourse,
		TypeItemListPage:        enrichItemListPage,
	}
	return b
}

// technicalKeywords flags blog posts that warrant a companion TechArticle
// schema. Matching is case-insensitive on the resolved keyword list.
var technicalKeywords = []string{
	"code", "api", "framework", "javascript", "typescript", "react",
	"docusaurus", "node", "golang", "docker", "git", "cli", "plugin",
	"composant", "développement", "programmation",
}

// Build assembles the schema set for the page. With an explicit
// schemaTypes front-matter list it emits one schema per listed type
// (multi-schema mode); otherwise it classifies the route and emits a
// single enriched schema, plus a companion TechArticle for technical blog
// posts. A BreadcrumbList is appended in both modes.
func (b *Builder) Build(ctx PageContext, md ResolvedMetadata) []Schema {
	fm := ctx.FrontMatter()

	if types := fm.Strings("schemaTypes"); len(types) > 0 {
		return b.buildMulti(ctx, md, types)
	}

	kind := Classify(ctx.Pathname, ctx.Search)
	schemaType := SchemaTypeFor(kind)
	if explicit, ok := ExplicitSchemaType(fm); ok {
		schemaType = explicit
	}

	schemas := []Schema{b.applyEnrichment(schemaType, b.base(schemaType, md, ""), ctx, md)}

	if schemaType == TypeBlogPosting && b.hasTechnicalKeywords(md.Keywords) {
		tech := b.base(TypeTechArticle, md, "techarticle")
		schemas = append(schemas, b.applyEnrichment(TypeTechArticle, tech, ctx, md))
	}

	schemas = append(schemas, b.breadcrumb(ctx, md))
	return schemas
}

func (b *Builder) buildMulti(ctx PageContext, md ResolvedMetadata, types []string) []Schema {
	schemas := make([]Schema, 0, len(types)+1)
	for i, t := range types {
		fragment := ""
		if i > 0 {
			// subsequent schemas describe the same resource; fragments keep
			// their ids distinct without diverging from the canonical base
			fragment = strings.ToLower(t)
		}
		st := SchemaType(t)
		schemas = append(schemas, b.applyEnrichment(st, b.base(st, md, fragment), ctx, md))
	}
	schemas = append(schemas, b.breadcrumb(ctx, md))
	return schemas
}

func (b *Builder) applyEnrichment(t SchemaType, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	if fn, ok := b.enrich[t]; ok {
		return fn(b, s, ctx, md)
	}
	return s
}

// base builds the common skeleton every schema starts from. fragment, when
// non-empty, is appended to the canonical id after a '#'.
func (b *Builder) base(t SchemaType, md ResolvedMetadata, fragment string) Schema {
	id := md.CanonicalID
	if fragment != "" {
		id += "#" + fragment
	}
	s := Schema{
		"@context":    schemaContext,
		"@type":       string(t),
		"@id":         id,
		"url":         md.CanonicalURL,
		"name":        md.Title,
		"description": md.Description,
		"inLanguage":  md.Language,
	}
	if md.ImageURL != "" {
		s["image"] = md.ImageURL
	}
	return s
}

func (b *Builder) hasTechnicalKeywords(keywords []string) bool {
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, tech := range technicalKeywords {
			if lower == tech || strings.Contains(lower, tech) {
				return true
			}
		}
	}
	return false
}

// breadcrumb builds the BreadcrumbList schema: site root, then the section
// listing when the page sits under one, then the page itself.
func (b *Builder) breadcrumb(ctx PageContext, md ResolvedMetadata) Schema {
	items := []map[string]any{{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Accueil",
		"item":     CanonicalURL(b.site, "/"),
	}}
	if section, name := sectionOf(ctx.Pathname); section != "" {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": len(items) + 1,
			"name":     name,
			"item":     CanonicalURL(b.site, section),
		})
	}
	if ctx.Pathname != "/" && ctx.Pathname != "" {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": len(items) + 1,
			"name":     md.Title,
			"item":     md.CanonicalURL,
		})
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"@id":             md.CanonicalID + "#breadcrumb",
		"url":             md.CanonicalURL,
		"name":            md.Title,
		"itemListElement": items,
	}
}

// sectionOf returns the listing path and display name of the section a
// pathname belongs to, or empty strings for top-level pages.
func sectionOf(pathname string) (string, string) {
	p := ensureTrailingSlash(pathname)
	switch {
	case strings.Contains(p, "/blog/") && !strings.HasSuffix(p, "/blog/"):
		return "/blog/", "Blog"
	case strings.Contains(p, "/series/") && !strings.HasSuffix(p, "/series/"):
		return "/series/", "Séries"
	case strings.Contains(p, "/repository/") && !strings.HasSuffix(p, "/repository/"):
		return "/repository/", "Repository"
	}
	return "", ""
}
