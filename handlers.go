package seoforge

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/seoforge/content"
)

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n",
		CanonicalID(a.Config, "/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Index.All()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Index.All()
	if err != nil {
		return err
	}
	return a.renderFeed(c, posts)
}

// handleHeadJSON runs the pipeline for ?path= and returns the full result:
// resolved metadata, schema set, meta tags, and the validation report.
func (a *App) handleHeadJSON(c echo.Context) error {
	result, err := a.runFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// handleValidate returns only the validation report for ?path=.
func (a *App) handleValidate(c echo.Context) error {
	result, err := a.runFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Report)
}

// handleHeadPreview renders the head snippet the page would carry.
func (a *App) handleHeadPreview(c echo.Context) error {
	result, err := a.runFor(c)
	if err != nil {
		return err
	}
	return Render(c, HeadTags(result.Meta, result.Schemas))
}

func (a *App) runFor(c echo.Context) (Result, error) {
	path := c.QueryParam("path")
	if path == "" {
		return Result{}, echo.NewHTTPError(http.StatusBadRequest, "missing path parameter")
	}
	search := c.QueryParam("search")
	return a.Pipeline.Run(a.PageContextFor(path, search)), nil
}

// PageContextFor builds the PageContext for a pathname: blog-post pages get
// their indexed metadata attached, everything else resolves as a generic
// page.
func (a *App) PageContextFor(pathname, search string) PageContext {
	ctx := PageContext{
		Pathname: pathname,
		Search:   search,
		Site:     a.Config,
	}
	if Classify(pathname, search) != KindBlogPost {
		return ctx
	}
	post, err := a.Index.ByPermalink(pathname)
	if err != nil {
		if err != content.ErrNotFound {
			a.log.Warn("post lookup failed",
				zap.String("path", pathname), zap.Error(err))
		}
		return ctx
	}
	ctx.BlogPost = blogPostMeta(post)
	return ctx
}

func blogPostMeta(p content.Post) *BlogPostMeta {
	return &BlogPostMeta{
		Title:              p.Title,
		Description:        p.Description,
		Permalink:          p.Permalink,
		Date:               p.Date,
		LastUpdatedAt:      p.LastUpdatedAt,
		WordCount:          p.WordCount,
		ReadingTimeMinutes: p.ReadingTimeMinutes,
		FrontMatter:        FrontMatter(p.FrontMatter),
	}
}

// BuildPages runs the pipeline over every page of the site: the framework
// pages plus every indexed post. Used by the CLI build and validate
// commands.
func (a *App) BuildPages() ([]Result, []string, error) {
	var results []Result
	var paths []string

	for _, p := range []string{"/", "/blog/", "/series/"} {
		results = append(results, a.Pipeline.Run(a.PageContextFor(p, "")))
		paths = append(paths, p)
	}
	if names, err := a.Index.SeriesNames(); err == nil {
		for _, name := range names {
			results = append(results, a.Pipeline.Run(a.PageContextFor("/series/", "name="+name)))
			paths = append(paths, "/series/?name="+name)
		}
	}
	posts, err := a.Index.All()
	if err != nil {
		return results, paths, fmt.Errorf("seoforge: list posts: %w", err)
	}
	for _, p := range posts {
		results = append(results, a.Pipeline.Run(a.PageContextFor(p.Permalink, "")))
		paths = append(paths, strings.TrimRight(p.Permalink, "/")+"/")
	}
	return results, paths, nil
}
