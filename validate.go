package seoforge

import (
	"fmt"
	"strings"
)

// Report is the outcome of validating one page's schema set. It is meant
// for developer diagnostics; production output is always repaired before
// emission, so visitors never see an invalid set.
type Report struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Summary  string   `json:"summary"`
}

// Validate checks structural invariants over a page's schema set: every
// schema carries an @id, no @id/url/mainEntityOfPage contains a double
// slash outside the scheme, and all @id values share the same base
// (pre-'#') string. Differing fragments on the same base are normal
// multi-schema behavior, not an inconsistency.
func Validate(schemas []Schema) Report {
	var r Report
	base := ""
	for i, s := range schemas {
		label := fmt.Sprintf("schema %d (%s)", i+1, orUnknown(s.Type()))
		id := s.ID()
		if id == "" {
			r.Errors = append(r.Errors, label+": missing @id")
			continue
		}
		for _, field := range []string{"@id", "url", "mainEntityOfPage"} {
			if v := urlField(s, field); v != "" && hasDoubleSlash(v) {
				r.Errors = append(r.Errors, fmt.Sprintf("%s: %s contains a double slash: %s", label, field, v))
			}
		}
		if urlField(s, "url") == "" {
			r.Warnings = append(r.Warnings, label+": missing url")
		}
		if name, _ := s["name"].(string); name == "" {
			r.Warnings = append(r.Warnings, label+": missing name")
		}
		if base == "" {
			base = s.baseID()
		} else if s.baseID() != base {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: @id base %q differs from %q", label, s.baseID(), base))
		}
	}
	r.IsValid = len(r.Errors) == 0
	status := "passed"
	if !r.IsValid {
		status = "failed"
	}
	r.Summary = fmt.Sprintf("%d schema(s) validated, %d error(s), %d warning(s): %s",
		len(schemas), len(r.Errors), len(r.Warnings), status)
	return r
}

// Repair returns a new schema set where every @id, url, and
// mainEntityOfPage is rewritten to the supplied canonical pair. Once an
// inconsistency is detected, no per-schema value is trusted; canonical
// truth is forced everywhere. Fragments on @id are preserved so
// co-located schemas stay distinguishable.
func Repair(schemas []Schema, canonicalID, canonicalURL string) []Schema {
	out := make([]Schema, 0, len(schemas))
	for _, s := range schemas {
		fixed := make(Schema, len(s))
		for k, v := range s {
			fixed[k] = v
		}
		id := canonicalID
		if frag := fragmentOf(s.ID()); frag != "" {
			id += "#" + frag
		}
		fixed["@id"] = id
		fixed["url"] = canonicalURL
		if _, ok := fixed["mainEntityOfPage"]; ok {
			fixed["mainEntityOfPage"] = map[string]any{
				"@type": "WebPage",
				"@id":   canonicalID,
			}
		}
		out = append(out, fixed)
	}
	return out
}

// urlField extracts a URL-valued field; mainEntityOfPage may be either a
// string or a nested reference object.
func urlField(s Schema, field string) string {
	switch v := s[field].(type) {
	case string:
		return v
	case map[string]any:
		id, _ := v["@id"].(string)
		return id
	}
	return ""
}

// hasDoubleSlash reports a "//" anywhere but immediately after the scheme.
func hasDoubleSlash(u string) bool {
	rest := u
	if i := strings.Index(u, "://"); i >= 0 {
		rest = u[i+3:]
	}
	return strings.Contains(rest, "//")
}

func fragmentOf(id string) string {
	if i := strings.IndexByte(id, '#'); i >= 0 {
		return id[i+1:]
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
