package seoforge

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// defaultDescription is the last-resort description when every source in
// the cascade is empty.
const defaultDescription = "Articles, tutoriels et ressources autour du développement web."

// recentArticleWindow is how long an article counts as recent.
const recentArticleWindow = 30 * 24 * time.Hour

// maxKeywords caps the merged keyword list.
const maxKeywords = 20

// Resolver derives page metadata from prioritized sources: blog front
// matter, then page front matter, then site config, then a literal default.
// All methods are pure apart from warning logs and, for the date fallbacks,
// the clock; none of them ever fails.
type Resolver struct {
	site    SiteConfig
	authors AuthorDirectory
	now     func() time.Time
}

// NewResolver creates a Resolver for the given site and runtime author
// directory. authors may be nil.
func NewResolver(site SiteConfig, authors AuthorDirectory) *Resolver {
	return &Resolver{site: site, authors: authors, now: time.Now}
}

// Title resolves the page title: blog post, then page metadata, then front
// matter, then the site title.
func (r *Resolver) Title(ctx PageContext) string {
	return firstNonEmpty(
		func() string {
			if ctx.BlogPost == nil {
				return ""
			}
			if ctx.BlogPost.Title != "" {
				return ctx.BlogPost.Title
			}
			return ctx.BlogPost.FrontMatter.String("title")
		},
		func() string {
			if ctx.Page == nil {
				return ""
			}
			if ctx.Page.Title != "" {
				return ctx.Page.Title
			}
			return ctx.Page.FrontMatter.String("title")
		},
		lit(r.site.Title),
	)
}

// Description resolves the page description, falling back to the site
// description and finally a fixed string.
func (r *Resolver) Description(ctx PageContext) string {
	return firstNonEmpty(
		func() string {
			if ctx.BlogPost == nil {
				return ""
			}
			if ctx.BlogPost.Description != "" {
				return ctx.BlogPost.Description
			}
			return ctx.BlogPost.FrontMatter.String("description")
		},
		func() string {
			if ctx.Page == nil {
				return ""
			}
			if ctx.Page.Description != "" {
				return ctx.Page.Description
			}
			return ctx.Page.FrontMatter.String("description")
		},
		lit(r.site.Description),
		lit(defaultDescription),
	)
}

// PublishedDate resolves the publication date as an ISO 8601 string,
// cascading computed date then front-matter date for the blog post, then
// the page, then the current instant.
func (r *Resolver) PublishedDate(ctx PageContext) string {
	raw := firstNonEmpty(
		func() string {
			if ctx.BlogPost == nil {
				return ""
			}
			if ctx.BlogPost.Date != "" {
				return ctx.BlogPost.Date
			}
			return ctx.BlogPost.FrontMatter.String("date")
		},
		func() string {
			if ctx.Page == nil {
				return ""
			}
			return ctx.Page.FrontMatter.String("date")
		},
	)
	if raw == "" {
		return r.now().UTC().Format(time.RFC3339)
	}
	return r.FormatSchemaDate(raw)
}

// ModifiedDate resolves the modification date. It cascades through the
// last-update fields before falling back to the published-date cascade, so
// a modification date never outranks publication data it does not have.
func (r *Resolver) ModifiedDate(ctx PageContext) string {
	raw := firstNonEmpty(
		func() string {
			if ctx.BlogPost == nil {
				return ""
			}
			if ctx.BlogPost.LastUpdatedAt != "" {
				return ctx.BlogPost.LastUpdatedAt
			}
			return ctx.BlogPost.FrontMatter.String("last_update")
		},
		func() string {
			if ctx.Page == nil {
				return ""
			}
			return ctx.Page.FrontMatter.String("last_update")
		},
	)
	if raw == "" {
		return r.PublishedDate(ctx)
	}
	return r.FormatSchemaDate(raw)
}

// schemaDateLayouts are the accepted non-ISO input forms, tried in order.
var schemaDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// FormatSchemaDate normalizes a date string to ISO 8601. Values that
// already look ISO (contain both T and Z) pass through unchanged. On parse
// failure it logs a warning and returns the current instant; it never fails.
func (r *Resolver) FormatSchemaDate(date string) string {
	date = strings.TrimSpace(date)
	if strings.Contains(date, "T") && strings.Contains(date, "Z") {
		return date
	}
	for _, layout := range schemaDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	pkgLog.Warn("unparsable schema date", zap.String("date", date))
	return r.now().UTC().Format(time.RFC3339)
}

// IsRecentArticle reports whether date falls within the last 30 days.
func (r *Resolver) IsRecentArticle(date string) bool {
	for _, layout := range append([]string{time.RFC3339}, schemaDateLayouts...) {
		if t, err := time.Parse(layout, date); err == nil {
			age := r.now().Sub(t)
			return age >= 0 && age <= recentArticleWindow
		}
	}
	return false
}

// Keywords merges keywords and tags from blog and page front matter,
// deduplicates case-insensitively keeping first-seen casing, drops entries
// outside [2,50] characters or purely numeric, and caps the result at 20.
// It returns both the slice and the ", "-joined string form.
func (r *Resolver) Keywords(ctx PageContext) ([]string, string) {
	var merged []string
	for _, fm := range []FrontMatter{blogFM(ctx), pageFM(ctx)} {
		merged = append(merged, fm.Strings("keywords")...)
		merged = append(merged, fm.Strings("tags")...)
	}
	seen := make(map[string]struct{}, len(merged))
	var out []string
	for _, kw := range FilterEmpty(merged) {
		if len(kw) < 2 || len(kw) > 50 || isNumeric(kw) {
			continue
		}
		lower := strings.ToLower(kw)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, kw)
		if len(out) == maxKeywords {
			break
		}
	}
	return out, JoinTags(out)
}

// ArticleSection resolves the schema.org articleSection: front-matter
// category first, then the first keyword, then "Blog".
func (r *Resolver) ArticleSection(ctx PageContext) string {
	return firstNonEmpty(
		func() string { return blogFM(ctx).String("category") },
		func() string { return pageFM(ctx).String("category") },
		func() string {
			kws, _ := r.Keywords(ctx)
			if len(kws) > 0 {
				return kws[0]
			}
			return ""
		},
		lit("Blog"),
	)
}

// Image resolves the social/schema image URL, absolutized against the site
// origin: front matter, then the theme image, then a default path.
func (r *Resolver) Image(ctx PageContext) string {
	raw := firstNonEmpty(
		func() string { return blogFM(ctx).String("image") },
		func() string { return pageFM(ctx).String("image") },
		lit(r.site.ThemeImage),
		lit(defaultAuthorImage),
	)
	return absolutize(r.site, raw)
}

// languageUpgrades upgrades bare two-letter codes to full BCP 47 tags.
// Codes already containing a hyphen pass through unchanged.
var languageUpgrades = map[string]string{
	"fr": "fr-FR",
	"en": "en-US",
	"es": "es-ES",
	"de": "de-DE",
	"it": "it-IT",
	"pt": "pt-PT",
	"nl": "nl-NL",
}

// NormalizeLanguageCode upgrades a bare language code to a BCP 47 tag via
// a fixed table. Unknown codes pass through unchanged.
func NormalizeLanguageCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.Contains(code, "-") {
		return code
	}
	if full, ok := languageUpgrades[strings.ToLower(code)]; ok {
		return full
	}
	return code
}

// Language resolves the content language: inLanguage then lang front-matter
// keys (blog first), then the site default locale, then fr-FR.
func (r *Resolver) Language(ctx PageContext) string {
	raw := firstNonEmpty(
		func() string { return blogFM(ctx).String("inLanguage") },
		func() string { return pageFM(ctx).String("inLanguage") },
		func() string { return blogFM(ctx).String("lang") },
		func() string { return pageFM(ctx).String("lang") },
		lit(r.site.DefaultLocale),
		lit("fr-FR"),
	)
	return NormalizeLanguageCode(raw)
}

// Resolve runs every cascade once and returns the full ResolvedMetadata
// for the page.
func (r *Resolver) Resolve(ctx PageContext) ResolvedMetadata {
	keywords, keywordsText := r.Keywords(ctx)
	return ResolvedMetadata{
		Title:          r.Title(ctx),
		Description:    r.Description(ctx),
		CanonicalID:    CanonicalID(r.site, ctx.Pathname),
		CanonicalURL:   CanonicalURL(r.site, ctx.Pathname),
		ImageURL:       r.Image(ctx),
		PrimaryAuthor:  r.PrimaryAuthor(ctx),
		DatePublished:  r.PublishedDate(ctx),
		DateModified:   r.ModifiedDate(ctx),
		Keywords:       keywords,
		KeywordsText:   keywordsText,
		ArticleSection: r.ArticleSection(ctx),
		Language:       r.Language(ctx),
	}
}

func blogFM(ctx PageContext) FrontMatter {
	if ctx.BlogPost != nil {
		return ctx.BlogPost.FrontMatter
	}
	return nil
}

func pageFM(ctx PageContext) FrontMatter {
	if ctx.Page != nil {
		return ctx.Page.FrontMatter
	}
	return nil
}
