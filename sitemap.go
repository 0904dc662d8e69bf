package seoforge

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seoforge/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapEntries builds the sitemap URL list: home, blog and series
// listings, then every post at its canonical URL.
func (a *App) SitemapEntries(posts []content.Post) []sitemapURL {
	urls := []sitemapURL{
		{Loc: CanonicalURL(a.Config, "/")},
		{Loc: CanonicalURL(a.Config, "/blog/")},
		{Loc: CanonicalURL(a.Config, "/series/")},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     CanonicalURL(a.Config, p.Permalink),
			LastMod: lastModOf(p),
		})
	}
	return urls
}

func lastModOf(p content.Post) string {
	if p.LastUpdatedAt != "" {
		return p.LastUpdatedAt
	}
	return p.Date
}

func (a *App) renderSitemap(c echo.Context, posts []content.Post) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  a.SitemapEntries(posts),
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// SitemapXML renders the sitemap as bytes for the static build command.
func (a *App) SitemapXML(posts []content.Post) ([]byte, error) {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  a.SitemapEntries(posts),
	}
	body, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
