package seoforge

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// fileExtRe matches a trailing file extension like ".xml" or ".HTML".
var fileExtRe = regexp.MustCompile(`(?i)\.[a-z]+$`)

// NormalizeURL joins base and path with exactly one slash and collapses any
// remaining duplicate slashes, keeping only the one immediately after the
// scheme. When either input is empty it returns the other one unchanged and
// logs a warning; it never fails.
func NormalizeURL(base, path string) string {
	base = strings.TrimSpace(base)
	path = strings.TrimSpace(path)
	if base == "" || path == "" {
		pkgLog.Warn("normalize url called with empty input",
			zap.String("base", base), zap.String("path", path))
		if base != "" {
			return collapseSlashes(base)
		}
		return collapseSlashes(path)
	}
	joined := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	return collapseSlashes(joined)
}

// collapseSlashes rewrites any "//" run to a single "/", preserving the
// double slash of a leading scheme.
func collapseSlashes(u string) string {
	scheme := ""
	rest := u
	if i := strings.Index(u, "://"); i >= 0 {
		scheme = u[:i+3]
		rest = u[i+3:]
	}
	for strings.Contains(rest, "//") {
		rest = strings.ReplaceAll(rest, "//", "/")
	}
	return scheme + rest
}

// CanonicalID builds the schema.org @id for a pathname: the site origin
// joined with the pathname, with no trailing slash.
func CanonicalID(site SiteConfig, pathname string) string {
	if pathname == "" || pathname == "/" {
		return strings.TrimRight(site.URL, "/")
	}
	id := NormalizeURL(site.URL, pathname)
	return strings.TrimRight(id, "/")
}

// CanonicalURL builds the public-facing canonical URL for a pathname: same
// as CanonicalID but with a trailing slash, unless the pathname names a
// file with an extension. The extension check runs on the pathname, not
// the joined URL, so a bare-domain TLD never reads as an extension.
func CanonicalURL(site SiteConfig, pathname string) string {
	id := CanonicalID(site, pathname)
	if fileExtRe.MatchString(pathname) {
		return id
	}
	return id + "/"
}

// absolutize resolves an image or asset path against the site origin.
// Absolute URLs pass through unchanged.
func absolutize(site SiteConfig, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return NormalizeURL(site.URL, path)
}
