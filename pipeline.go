package seoforge

import "go.uber.org/zap"

// Result is everything the pipeline derives for one page.
type Result struct {
	Metadata ResolvedMetadata `json:"metadata"`
	Schemas  []Schema         `json:"schemas"`
	Meta     MetaTags         `json:"meta"`
	Report   Report           `json:"report"`
}

// Pipeline runs the full resolution for a page: metadata cascades,
// classification, schema construction, validation, and repair. It is
// synchronous, allocation-only, and never fails; malformed inputs degrade
// to safe defaults.
type Pipeline struct {
	site    SiteConfig
	res     *Resolver
	builder *Builder
}

// NewPipeline wires a Pipeline for the given site. authors and index may
// be nil.
func NewPipeline(site SiteConfig, authors AuthorDirectory, index PostIndex) *Pipeline {
	res := NewResolver(site, authors)
	return &Pipeline{
		site:    site,
		res:     res,
		builder: NewBuilder(site, res, index),
	}
}

// Resolver exposes the pipeline's resolver for callers that need single
// cascades without a full run.
func (p *Pipeline) Resolver() *Resolver {
	return p.res
}

// Run resolves the page and returns the schema set, meta tags, and the
// validation report. An invalid schema set is repaired before being
// returned; the report describes the pre-repair state.
func (p *Pipeline) Run(ctx PageContext) Result {
	md := p.res.Resolve(ctx)
	schemas := p.builder.Build(ctx, md)
	report := Validate(schemas)
	if !report.IsValid {
		pkgLog.Warn("schema set failed validation, repairing",
			zap.String("path", ctx.Pathname),
			zap.Strings("errors", report.Errors))
		schemas = Repair(schemas, md.CanonicalID, md.CanonicalURL)
	}
	return Result{
		Metadata: md,
		Schemas:  schemas,
		Meta:     p.MetaTagsFor(ctx, md),
		Report:   report,
	}
}
