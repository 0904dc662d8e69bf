package seoforge

import (
	"math"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/eringen/seoforge/content"
)

// defaultReadingTime is the timeRequired fallback for posts with no
// reading-time estimate and no front-matter override.
const defaultReadingTime = "PT5M"

// defaultSeriesEntries is the fallback ItemList when the post index is
// unavailable. The page still renders valid, if generic, structured data.
var defaultSeriesEntries = []map[string]any{
	{"@type": "ListItem", "position": 1, "name": "Articles"},
}

func (b *Builder) publisher() map[string]any {
	org := map[string]any{
		"@type": "Organization",
		"name":  b.site.Title,
		"url":   CanonicalURL(b.site, "/"),
	}
	if b.site.ThemeImage != "" {
		org["logo"] = map[string]any{
			"@type": "ImageObject",
			"url":   absolutize(b.site, b.site.ThemeImage),
		}
	}
	return org
}

func personFrom(author AuthorRecord) map[string]any {
	person := map[string]any{
		"@type": "Person",
		"name":  author.Name,
	}
	if author.URL != "" {
		person["url"] = author.URL
	}
	if author.Title != "" {
		person["jobTitle"] = author.Title
	}
	if author.ImageURL != "" {
		person["image"] = author.ImageURL
	}
	return person
}

func enrichBlogPosting(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	s["headline"] = md.Title
	s["author"] = personFrom(md.PrimaryAuthor)
	s["publisher"] = b.publisher()
	s["datePublished"] = md.DatePublished
	s["dateModified"] = md.DateModified
	s["mainEntityOfPage"] = map[string]any{
		"@type": "WebPage",
		"@id":   md.CanonicalID,
	}
	if md.KeywordsText != "" {
		s["keywords"] = md.KeywordsText
	}
	s["articleSection"] = md.ArticleSection

	fm := ctx.FrontMatter()
	if ctx.BlogPost != nil && ctx.BlogPost.WordCount > 0 {
		s["wordCount"] = ctx.BlogPost.WordCount
	} else if wc, ok := fm.Float("wordCount"); ok {
		s["wordCount"] = int(wc)
	}
	switch {
	case ctx.BlogPost != nil && ctx.BlogPost.ReadingTimeMinutes > 0:
		s["timeRequired"] = minutesToPT(int(math.Ceil(ctx.BlogPost.ReadingTimeMinutes)))
	case fm.Has("timeRequired"):
		s["timeRequired"] = FormatDuration(fm["timeRequired"])
	default:
		s["timeRequired"] = defaultReadingTime
	}
	return s
}

func enrichWebSite(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	s["publisher"] = b.publisher()
	s["potentialAction"] = map[string]any{
		"@type":       "SearchAction",
		"target":      CanonicalID(b.site, b.site.SearchPath) + "?q={search_term_string}",
		"query-input": "required name=search_term_string",
	}
	if len(b.site.SameAs) > 0 {
		s["sameAs"] = b.site.SameAs
	}
	return s
}

// enrichCollectionPage branches on the URL shape: blog listing, series
// listing, one specific series, or a generic custom collection such as
// /repository/. Each populates a different mainEntity.
func enrichCollectionPage(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	switch Classify(ctx.Pathname, ctx.Search) {
	case KindBlogListing:
		s["mainEntity"] = map[string]any{
			"@type":       "Blog",
			"@id":         md.CanonicalID + "#blog",
			"name":        md.Title,
			"description": md.Description,
		}
	case KindSeriesListing:
		s["mainEntity"] = b.seriesListingEntity(md)
	case KindSeries:
		s["mainEntity"] = b.seriesEntity(seriesName(ctx.Search), md)
	default:
		s["mainEntity"] = b.collectionEntity(md)
	}
	return s
}

// seriesListingEntity builds an ItemList of all known series.
func (b *Builder) seriesListingEntity(md ResolvedMetadata) map[string]any {
	entity := map[string]any{
		"@type": "ItemList",
		"@id":   md.CanonicalID + "#serieslist",
		"name":  md.Title,
	}
	if b.index == nil {
		entity["itemListElement"] = defaultSeriesEntries
		return entity
	}
	names, err := b.index.SeriesNames()
	if err != nil {
		pkgLog.Warn("series lookup failed, using fallback entries", zap.Error(err))
		entity["itemListElement"] = defaultSeriesEntries
		return entity
	}
	items := make([]map[string]any, 0, len(names))
	for i, name := range names {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     name,
			"url":      CanonicalURL(b.site, "/series/") + "?name=" + name,
		})
	}
	if len(items) == 0 {
		items = defaultSeriesEntries
	}
	entity["itemListElement"] = items
	return entity
}

// seriesEntity builds an ItemList of one series' articles in reading order.
func (b *Builder) seriesEntity(name string, md ResolvedMetadata) map[string]any {
	entity := map[string]any{
		"@type": "ItemList",
		"@id":   md.CanonicalID + "#serie",
		"name":  name,
	}
	if name == "" || b.index == nil {
		entity["itemListElement"] = defaultSeriesEntries
		return entity
	}
	posts, err := b.index.BySeries(name)
	if err != nil {
		pkgLog.Warn("series lookup failed, using fallback entries",
			zap.String("serie", name), zap.Error(err))
		entity["itemListElement"] = defaultSeriesEntries
		return entity
	}
	entity["itemListElement"] = b.postListItems(posts)
	return entity
}

// collectionEntity builds the ItemList of a generic custom collection.
func (b *Builder) collectionEntity(md ResolvedMetadata) map[string]any {
	entity := map[string]any{
		"@type": "ItemList",
		"@id":   md.CanonicalID + "#collection",
		"name":  md.Title,
	}
	if b.index == nil {
		entity["itemListElement"] = defaultSeriesEntries
		return entity
	}
	posts, err := b.index.All()
	if err != nil {
		pkgLog.Warn("post index lookup failed, using fallback entries", zap.Error(err))
		entity["itemListElement"] = defaultSeriesEntries
		return entity
	}
	entity["itemListElement"] = b.postListItems(posts)
	return entity
}

func (b *Builder) postListItems(posts []content.Post) []map[string]any {
	if len(posts) == 0 {
		return defaultSeriesEntries
	}
	items := make([]map[string]any, 0, len(posts))
	for i, p := range posts {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     p.Title,
			"url":      CanonicalURL(b.site, p.Permalink),
		})
	}
	return items
}

// seriesName extracts the name query parameter from a raw search string.
// The value is percent-decoded; an undecodable value is used as-is.
func seriesName(search string) string {
	search = strings.TrimPrefix(search, "?")
	for _, pair := range strings.Split(search, "&") {
		if after, ok := strings.CutPrefix(pair, "name="); ok {
			if decoded, err := url.QueryUnescape(after); err == nil {
				return decoded
			}
			return after
		}
	}
	return ""
}

func enrichHowTo(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	fm := ctx.FrontMatter()
	s["totalTime"] = FormatDuration(fm["totalTime"])
	if fm.Has("proficiencyLevel") || fm.Has("difficulty") {
		s["proficiencyLevel"] = difficultyOf(fm)
	}
	if tools := fm.Strings("tool"); len(tools) > 0 {
		s["tool"] = howToItems("HowToTool", tools)
	}
	if supplies := fm.Strings("supply"); len(supplies) > 0 {
		s["supply"] = howToItems("HowToSupply", supplies)
	}
	if steps := fm.Maps("steps"); len(steps) > 0 {
		items := make([]map[string]any, 0, len(steps))
		for i, step := range steps {
			item := map[string]any{
				"@type":    "HowToStep",
				"position": i + 1,
			}
			if name, ok := step["name"].(string); ok && name != "" {
				item["name"] = name
			}
			if text, ok := step["text"].(string); ok && text != "" {
				item["text"] = text
			}
			if u, ok := step["url"].(string); ok && u != "" {
				item["url"] = absolutize(b.site, u)
			}
			items = append(items, item)
		}
		s["step"] = items
	}
	return s
}

func howToItems(itemType string, names []string) []map[string]any {
	items := make([]map[string]any, 0, len(names))
	for _, n := range names {
		items = append(items, map[string]any{"@type": itemType, "name": n})
	}
	return items
}

func enrichTechArticle(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	fm := ctx.FrontMatter()
	s["headline"] = md.Title
	s["author"] = personFrom(md.PrimaryAuthor)
	s["datePublished"] = md.DatePublished
	s["dateModified"] = md.DateModified
	s["proficiencyLevel"] = difficultyOf(fm)
	if md.KeywordsText != "" {
		s["keywords"] = md.KeywordsText
	}
	if deps := fm.Strings("dependencies"); len(deps) > 0 {
		s["dependencies"] = JoinTags(deps)
	}
	if lang := fm.String("programmingLanguage"); lang != "" {
		s["programmingLanguage"] = lang
	}
	return s
}

func enrichFAQPage(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	faqs := ctx.FrontMatter().Maps("faq")
	if len(faqs) == 0 {
		return s
	}
	questions := make([]map[string]any, 0, len(faqs))
	for _, faq := range faqs {
		q, _ := faq["question"].(string)
		a, _ := faq["answer"].(string)
		if q == "" || a == "" {
			continue
		}
		questions = append(questions, map[string]any{
			"@type": "Question",
			"name":  q,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  a,
			},
		})
	}
	if len(questions) > 0 {
		s["mainEntity"] = questions
	}
	return s
}

func enrichSoftwareApplication(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	fm := ctx.FrontMatter()
	if cat := fm.String("applicationCategory"); cat != "" {
		s["applicationCategory"] = cat
	}
	if os := fm.String("operatingSystem"); os != "" {
		s["operatingSystem"] = os
	}
	if lang := fm.String("programmingLanguage"); lang != "" {
		s["programmingLanguage"] = lang
	}
	if version := fm.String("softwareVersion"); version != "" {
		s["softwareVersion"] = version
	}
	if price := fm.String("price"); price != "" {
		s["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         price,
			"priceCurrency": "EUR",
		}
	}
	return s
}

func enrichCourse(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	fm := ctx.FrontMatter()
	s["provider"] = b.publisher()
	s["educationalLevel"] = difficultyOf(fm)
	if prereq := fm.Strings("coursePrerequisites"); len(prereq) > 0 {
		s["coursePrerequisites"] = JoinTags(prereq)
	}
	if teaches := fm.Strings("teaches"); len(teaches) > 0 {
		s["teaches"] = teaches
	}
	if fm.Has("totalTime") {
		s["timeRequired"] = FormatDuration(fm["totalTime"])
	}
	return s
}

func enrichItemListPage(b *Builder, s Schema, ctx PageContext, md ResolvedMetadata) Schema {
	s["mainEntity"] = b.collectionEntity(md)
	return s
}

// difficultyOf normalizes the difficulty level from either of the two
// front-matter keys that carry it.
func difficultyOf(fm FrontMatter) string {
	if fm.Has("proficiencyLevel") {
		return NormalizeDifficultyLevel(fm["proficiencyLevel"])
	}
	return NormalizeDifficultyLevel(fm["difficulty"])
}
