package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "build":
		if err := runBuild(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := runValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("seoforge %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`seoforge - SEO metadata and structured-data engine for static blogs

Usage:
  seoforge <command> [arguments]

Commands:
  serve       Run the sitemap/feed/diagnostics server
  build       Emit head snippets, sitemap.xml, feed.xml, robots.txt to an output dir
  validate    Run the pipeline over all content and print validation reports
  version     Print the seoforge version
  help        Show this help message

Examples:
  seoforge serve -config site.yaml -watch
  seoforge build -config site.yaml -out dist/
  seoforge validate -config site.yaml`)
}
