package seoforge

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		pathname string
		search   string
		want     PageKind
	}{
		{"/", "", KindHome},
		{"/blog/my-post/", "", KindBlogPost},
		{"/blog/my-post", "", KindBlogPost},
		{"/blog/", "", KindBlogListing},
		{"/blog", "", KindBlogListing},
		{"/blog/tags/react/", "", KindBlogListing},
		{"/blog/authors/docux/", "", KindBlogListing},
		{"/series/", "", KindSeriesListing},
		{"/series/", "name=react", KindSeries},
		{"/series/", "?name=react", KindSeries},
		{"/thanks/", "", KindThanks},
		{"/repository/", "", KindRepository},
		{"/about/", "", KindOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.pathname, tt.search); got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.pathname, tt.search, got, tt.want)
		}
	}
}

func TestSchemaTypeFor(t *testing.T) {
	tests := []struct {
		kind PageKind
		want SchemaType
	}{
		{KindHome, TypeWebSite},
		{KindBlogPost, TypeBlogPosting},
		{KindBlogListing, TypeCollectionPage},
		{KindSeries, TypeCollectionPage},
		{KindSeriesListing, TypeCollectionPage},
		{KindThanks, TypeWebPage},
		{KindRepository, TypeCollectionPage},
		{KindOther, TypeWebPage},
	}
	for _, tt := range tests {
		if got := SchemaTypeFor(tt.kind); got != tt.want {
			t.Errorf("SchemaTypeFor(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestExplicitSchemaTypeWins(t *testing.T) {
	fm := FrontMatter{"schemaTypes": []any{"HowTo", "FAQPage"}}
	got, ok := ExplicitSchemaType(fm)
	if !ok || got != TypeHowTo {
		t.Errorf("ExplicitSchemaType = %q, %v; want HowTo, true", got, ok)
	}

	fm = FrontMatter{"schemaType": "Course"}
	got, ok = ExplicitSchemaType(fm)
	if !ok || got != TypeCourse {
		t.Errorf("ExplicitSchemaType = %q, %v; want Course, true", got, ok)
	}

	if _, ok := ExplicitSchemaType(FrontMatter{}); ok {
		t.Error("ExplicitSchemaType on empty front matter should not match")
	}
}
