package seoforge

import "strings"

// PageKind is the route-derived page category.
type PageKind string

// Page kinds, from most to least specific.
const (
	KindHome          PageKind = "home"
	KindBlogPost      PageKind = "blog-post"
	KindBlogListing   PageKind = "blog-listing"
	KindSeries        PageKind = "series"
	KindSeriesListing PageKind = "series-listing"
	KindThanks        PageKind = "thanks"
	KindRepository    PageKind = "repository"
	KindOther         PageKind = "other"
)

// Classify maps a route to a PageKind using ordered, mutually exclusive
// rules; the first match wins.
func Classify(pathname, search string) PageKind {
	p := ensureTrailingSlash(pathname)
	switch {
	case p == "/":
		return KindHome
	case strings.Contains(p, "/blog/") &&
		!strings.HasSuffix(p, "/blog/") &&
		!strings.Contains(p, "/blog/tags/") &&
		!strings.Contains(p, "/blog/authors/"):
		return KindBlogPost
	case strings.HasSuffix(p, "/blog/") ||
		strings.Contains(p, "/blog/tags/") ||
		strings.Contains(p, "/blog/authors/"):
		return KindBlogListing
	case strings.Contains(p, "/series/"):
		if strings.Contains(search, "name=") {
			return KindSeries
		}
		return KindSeriesListing
	case strings.Contains(p, "/thanks/"):
		return KindThanks
	case strings.Contains(p, "/repository/"):
		return KindRepository
	default:
		return KindOther
	}
}

// kindSchemaTypes maps each page kind to its schema.org type.
var kindSchemaTypes = map[PageKind]SchemaType{
	KindHome:          TypeWebSite,
	KindBlogPost:      TypeBlogPosting,
	KindBlogListing:   TypeCollectionPage,
	KindSeries:        TypeCollectionPage,
	KindSeriesListing: TypeCollectionPage,
	KindThanks:        TypeWebPage,
	KindRepository:    TypeCollectionPage,
	KindOther:         TypeWebPage,
}

// SchemaTypeFor returns the schema.org type for a classified page kind.
func SchemaTypeFor(kind PageKind) SchemaType {
	if t, ok := kindSchemaTypes[kind]; ok {
		return t
	}
	return TypeWebPage
}

// ExplicitSchemaType returns the schema type the front matter forces, if
// any. schemaTypes[0] wins over schemaType; explicit values always win over
// URL-shape detection.
func ExplicitSchemaType(fm FrontMatter) (SchemaType, bool) {
	if types := fm.Strings("schemaTypes"); len(types) > 0 {
		return SchemaType(types[0]), true
	}
	if t := fm.String("schemaType"); t != "" {
		return SchemaType(t), true
	}
	return "", false
}

func ensureTrailingSlash(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") && !fileExtRe.MatchString(p) {
		return p + "/"
	}
	return p
}
