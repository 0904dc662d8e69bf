package seoforge

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds the site-wide settings every resolution consumes.
// Loaded once at startup, read-only thereafter.
type SiteConfig struct {
	Title         string   `yaml:"title"`          // Site title, last-resort fallback for page titles
	URL           string   `yaml:"url"`            // Absolute origin, no trailing slash (default "http://localhost:3000")
	BaseURL       string   `yaml:"base_url"`       // Base path with leading and trailing slash (default "/")
	Description   string   `yaml:"description"`    // Site description, fallback for page descriptions
	DefaultLocale string   `yaml:"default_locale"` // BCP 47 tag (default "fr-FR")
	ThemeImage    string   `yaml:"theme_image"`    // Default social image path
	SearchPath    string   `yaml:"search_path"`    // Path of the site search page (default "/search")
	SameAs        []string `yaml:"same_as"`        // External profile URLs for the WebSite schema

	Addr         string        `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string        `yaml:"database_path"` // SQLite path (default "data/content.db")
	ContentDir   string        `yaml:"content_dir"`   // Markdown content directory (default "content")
	StaticDir    string        `yaml:"static_dir"`    // Static assets directory (default "public")
	IndexTTL     time.Duration `yaml:"index_ttl"`     // Post index cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.BaseURL == "" {
		c.BaseURL = "/"
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "fr-FR"
	}
	if c.SearchPath == "" {
		c.SearchPath = "/search"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.IndexTTL == 0 {
		c.IndexTTL = 5 * time.Minute
	}
}

// LoadConfig reads a SiteConfig from a YAML file and applies defaults.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("seoforge: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("seoforge: parse config %s: %w", path, err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// LoadAuthorDirectory reads an AuthorDirectory from a YAML file mapping
// author keys to records.
func LoadAuthorDirectory(path string) (AuthorDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seoforge: read authors: %w", err)
	}
	var dir AuthorDirectory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("seoforge: parse authors %s: %w", path, err)
	}
	return dir, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithAuthors sets the runtime author directory consulted before the
// static fallback directory.
func WithAuthors(dir AuthorDirectory) Option {
	return func(a *App) {
		a.authors = dir
	}
}

// WithLogger sets the structured logger for the app and the pipeline.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
			SetLogger(l)
		}
	}
}

// WithWatch enables watching the content directory and invalidating the
// post index when files change.
func WithWatch() Option {
	return func(a *App) {
		a.watch = true
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("seoforge: required environment variable %s is not set", key)
	}
	return v
}
