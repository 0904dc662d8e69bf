package seoforge

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultAuthorImage is the image used for the synthetic site author when
// the theme configures none.
const defaultAuthorImage = "/img/authors/default.png"

// staticAuthors is the built-in fallback directory, consulted after the
// runtime-injected directory. Keys match the identifiers used in content
// front matter.
var staticAuthors = AuthorDirectory{
	"docux": {
		Name:     "Docux",
		Title:    "Auteur du blog",
		URL:      "https://github.com/Juniors017",
		ImageURL: "https://github.com/Juniors017.png",
	},
}

// normalizeAuthorName uppercases the first letter and lowercases the rest.
func normalizeAuthorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

// PrimaryAuthor resolves the page's author. The author key is taken from,
// in order: blog front matter authors[0], page front matter authors[0],
// page front matter author. The key is looked up in the runtime directory
// first, then the static fallback directory; a key found in neither yields
// a record named after the key itself. When no key resolves at all, a
// synthetic record is returned whose name is the site title verbatim and
// whose image is the theme image, absolutized, or the default author image.
//
// Real author names are normalized (first letter upper, rest lower); the
// synthetic site author deliberately is not.
func (r *Resolver) PrimaryAuthor(ctx PageContext) AuthorRecord {
	key := authorKey(ctx)
	if key == "" {
		return r.syntheticAuthor(r.site)
	}
	rec, ok := r.authors[key]
	if !ok {
		rec, ok = staticAuthors[key]
	}
	if !ok {
		rec = AuthorRecord{Name: key}
	}
	rec.Name = normalizeAuthorName(rec.Name)
	if rec.ImageURL != "" {
		rec.ImageURL = absolutize(r.site, rec.ImageURL)
	}
	return rec
}

func authorKey(ctx PageContext) string {
	if ctx.BlogPost != nil {
		if keys := ctx.BlogPost.FrontMatter.Strings("authors"); len(keys) > 0 {
			return keys[0]
		}
	}
	if ctx.Page != nil {
		if keys := ctx.Page.FrontMatter.Strings("authors"); len(keys) > 0 {
			return keys[0]
		}
		if key := ctx.Page.FrontMatter.String("author"); key != "" {
			return key
		}
	}
	return ""
}

func (r *Resolver) syntheticAuthor(site SiteConfig) AuthorRecord {
	img := site.ThemeImage
	if img == "" {
		img = defaultAuthorImage
	}
	return AuthorRecord{
		Name:     site.Title,
		URL:      site.URL,
		ImageURL: absolutize(site, img),
	}
}
