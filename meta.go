package seoforge

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"

	"go.uber.org/zap"
)

// MetaTags is the flat set of head meta tags derived from the same
// ResolvedMetadata the schemas are built from.
type MetaTags struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords,omitempty"`
	Canonical          string `json:"canonical"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGURL              string `json:"ogUrl"`
	OGType             string `json:"ogType"` // "website" or "article"
	OGSiteName         string `json:"ogSiteName"`
	OGLocale           string `json:"ogLocale"`
	OGImage            string `json:"ogImage,omitempty"`
	OGImageWidth       string `json:"ogImageWidth,omitempty"`
	OGImageHeight      string `json:"ogImageHeight,omitempty"`
	TwitterCard        string `json:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	TwitterImage       string `json:"twitterImage,omitempty"`
	ArticlePublished   string `json:"articlePublished,omitempty"`
	ArticleModified    string `json:"articleModified,omitempty"`
	ArticleAuthor      string `json:"articleAuthor,omitempty"`
}

// MetaTagsFor derives the meta-tag set for a page from its resolved
// metadata.
func (p *Pipeline) MetaTagsFor(ctx PageContext, md ResolvedMetadata) MetaTags {
	ogType := "website"
	if Classify(ctx.Pathname, ctx.Search) == KindBlogPost {
		ogType = "article"
	}
	m := MetaTags{
		Title:              md.Title,
		Description:        md.Description,
		Keywords:           md.KeywordsText,
		Canonical:          md.CanonicalURL,
		OGTitle:            md.Title,
		OGDescription:      md.Description,
		OGURL:              md.CanonicalURL,
		OGType:             ogType,
		OGSiteName:         p.site.Title,
		OGLocale:           strings.ReplaceAll(md.Language, "-", "_"),
		OGImage:            md.ImageURL,
		TwitterCard:        "summary_large_image",
		TwitterTitle:       md.Title,
		TwitterDescription: md.Description,
		TwitterImage:       md.ImageURL,
	}
	if ogType == "article" {
		m.ArticlePublished = md.DatePublished
		m.ArticleModified = md.DateModified
		m.ArticleAuthor = md.PrimaryAuthor.Name
	}
	if w, h, ok := probeImageSize(p.site, md.ImageURL); ok {
		m.OGImageWidth = strconv.Itoa(w)
		m.OGImageHeight = strconv.Itoa(h)
	}
	return m
}

// probeImageSize decodes the image config of a locally-served og:image to
// fill the width/height tags. Remote images and unreadable files are
// skipped silently; dimensions are an enhancement, not a requirement.
func probeImageSize(site SiteConfig, imageURL string) (int, int, bool) {
	local := localImagePath(site, imageURL)
	if local == "" {
		return 0, 0, false
	}
	f, err := os.Open(local)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		pkgLog.Warn("undecodable og:image", zap.String("path", local), zap.Error(err))
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

// localImagePath maps an image URL under the site origin to a path inside
// the static directory, or "" when the image is not locally served.
func localImagePath(site SiteConfig, imageURL string) string {
	if imageURL == "" || site.StaticDir == "" {
		return ""
	}
	origin := strings.TrimRight(site.URL, "/")
	if !strings.HasPrefix(imageURL, origin+"/") {
		return ""
	}
	rel := strings.TrimPrefix(imageURL, origin+"/")
	rel = filepath.Clean("/" + rel)
	return filepath.Join(site.StaticDir, rel)
}
