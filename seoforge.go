// Package seoforge derives SEO metadata and schema.org structured data for
// a static blog: canonical URLs, priority-cascaded titles/authors/dates/
// keywords, JSON-LD schema sets with validation and repair, and the
// supporting sitemap/feed/robots surface.
//
// The pipeline itself is a pure, synchronous transformation over a
// PageContext; the App wraps it with a content index and an Echo server
// for build-time and developer use.
package seoforge

import (
	"fmt"
	"net/http"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/seoforge/content"
)

// App wires together the content store, post index, pipeline, and the
// Echo server.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *content.Store
	Index    *content.Index
	Pipeline *Pipeline

	authors      AuthorDirectory
	log          *zap.Logger
	watch        bool
	watcherStop  chan struct{}
	customRoutes []func(*App)
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the store and index, loads the content directory, sets
// up middleware and routes, and starts the server. It blocks until the
// server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if a.watch {
		stop, err := a.watchContent()
		if err != nil {
			return fmt.Errorf("seoforge: watch content: %w", err)
		}
		a.watcherStop = stop
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Init builds the store, index, and pipeline without starting the server.
// The CLI build and validate commands use it directly; Start calls it.
func (a *App) Init() error {
	store, err := content.NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("seoforge: init store: %w", err)
	}
	a.Store = store
	a.Index = content.NewIndex(store, a.Config.IndexTTL)

	n, err := content.LoadDir(store, a.Config.ContentDir)
	if err != nil {
		// Content that fails to load degrades the index, not the server.
		a.log.Warn("content load incomplete", zap.Error(err))
	}
	a.log.Info("content loaded", zap.Int("posts", n))

	a.Pipeline = NewPipeline(a.Config, a.authors, a.Index)
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Developer diagnostics: the JSON result of the pipeline for a path,
	// and a rendered head snippet preview.
	e.GET("/api/head", a.handleHeadJSON)
	e.GET("/api/validate", a.handleValidate)
	e.GET("/head", a.handleHeadPreview)
}

// watchContent invalidates the index whenever the content directory
// changes, so the next request re-reads the store.
func (a *App) watchContent() (chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(a.Config.ContentDir); err != nil {
		watcher.Close()
		return nil, err
	}
	stop := make(chan struct{})
	go func() {
		defer watcher.Close()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					a.log.Info("content changed, reloading", zap.String("file", ev.Name))
					if _, err := content.LoadDir(a.Store, a.Config.ContentDir); err != nil {
						a.log.Warn("content reload incomplete", zap.Error(err))
					}
					a.Index.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Warn("content watcher error", zap.Error(err))
			case <-stop:
				return
			}
		}
	}()
	return stop, nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.watcherStop != nil {
		close(a.watcherStop)
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
