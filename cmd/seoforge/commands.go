package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eringen/seoforge"
)

// loadApp builds an App from the -config / -authors flags shared by every
// command.
func loadApp(fs *flag.FlagSet, args []string, extra ...seoforge.Option) (*seoforge.App, error) {
	configPath := fs.String("config", "site.yaml", "site config file")
	authorsPath := fs.String("authors", "", "author directory file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := seoforge.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	opts := []seoforge.Option{seoforge.WithLogger(log)}
	if *authorsPath != "" {
		authors, err := seoforge.LoadAuthorDirectory(*authorsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, seoforge.WithAuthors(authors))
	}
	opts = append(opts, extra...)

	return seoforge.New(cfg, opts...), nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "watch the content directory and reload on change")
	app, err := loadApp(fs, args)
	if err != nil {
		return err
	}
	defer app.Close()
	if *watch {
		seoforge.WithWatch()(app)
	}
	return app.Start()
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	outDir := fs.String("out", "dist", "output directory")
	app, err := loadApp(fs, args)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Init(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(*outDir, "head"), 0o755); err != nil {
		return err
	}

	results, paths, err := app.BuildPages()
	if err != nil {
		return err
	}
	for i, result := range results {
		name := headFileName(paths[i])
		var b strings.Builder
		for _, payload := range seoforge.SerializeSchemas(result.Schemas) {
			b.WriteString(`<script type="application/ld+json">`)
			b.WriteString(payload)
			b.WriteString("</script>\n")
		}
		path := filepath.Join(*outDir, "head", name)
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return err
		}
	}

	posts, err := app.Index.All()
	if err != nil {
		return err
	}
	sitemap, err := app.SitemapXML(posts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(*outDir, "sitemap.xml"), sitemap, 0o644); err != nil {
		return err
	}
	feed, err := app.FeedXML(posts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(*outDir, "feed.xml"), feed, 0o644); err != nil {
		return err
	}
	robots := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n",
		seoforge.CanonicalID(app.Config, "/sitemap.xml"))
	if err := os.WriteFile(filepath.Join(*outDir, "robots.txt"), []byte(robots), 0o644); err != nil {
		return err
	}

	fmt.Printf("built %d pages into %s\n", len(results), *outDir)
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	app, err := loadApp(fs, args)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Init(); err != nil {
		return err
	}
	results, paths, err := app.BuildPages()
	if err != nil {
		return err
	}

	failures := 0
	for i, result := range results {
		fmt.Printf("%-50s %s\n", paths[i], result.Report.Summary)
		for _, e := range result.Report.Errors {
			fmt.Printf("    error: %s\n", e)
			failures++
		}
		for _, w := range result.Report.Warnings {
			fmt.Printf("    warning: %s\n", w)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d validation error(s)", failures)
	}
	fmt.Printf("%d pages validated, no errors\n", len(results))
	return nil
}

// headFileName maps a pathname to its head-snippet file name:
// "/blog/my-post/" becomes "blog-my-post.html", "/" becomes "index.html".
func headFileName(pathname string) string {
	trimmed := strings.Trim(strings.ReplaceAll(pathname, "?", "-"), "/")
	if trimmed == "" {
		return "index.html"
	}
	return seoforge.Slugify(trimmed) + ".html"
}
