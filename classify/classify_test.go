package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		available  bool
		primary    string
		categories []Category
	}{
		{
			name:       "github repository",
			url:        "https://github.com/acme/widget",
			available:  true,
			primary:    "repository",
			categories: []Category{CategoryRepository},
		},
		{
			name:       "gitlab repository",
			url:        "https://gitlab.com/group/project",
			available:  true,
			primary:    "repository",
			categories: []Category{CategoryRepository},
		},
		{
			name:       "ecommerce domain",
			url:        "https://shop.example.com",
			available:  true,
			primary:    "ecommerce",
			categories: []Category{CategoryEcommerce},
		},
		{
			name:       "ecommerce path",
			url:        "https://example.com/checkout/payment",
			available:  true,
			primary:    "ecommerce",
			categories: []Category{CategoryEcommerce},
		},
		{
			name:       "blog domain",
			url:        "https://medium.com/@someone/a-story",
			available:  true,
			primary:    "blog",
			categories: []Category{CategoryBlog},
		},
		{
			name:       "documentation path",
			url:        "https://example.com/docs/getting-started",
			available:  true,
			primary:    "documentation",
			categories: []Category{CategoryDocumentation},
		},
		{
			name:       "social host",
			url:        "https://twitter.com/someone",
			available:  true,
			primary:    "social",
			categories: []Category{CategorySocial},
		},
		{
			name:      "multiple categories keep priority order",
			url:       "https://shop.example.com/blog/docs",
			available: true,
			primary:   "ecommerce",
			categories: []Category{
				CategoryEcommerce, CategoryBlog, CategoryDocumentation,
			},
		},
		{
			name:       "no match yields general",
			url:        "https://example.com/about",
			available:  true,
			primary:    "general",
			categories: []Category{},
		},
		{
			name:       "empty url is unavailable",
			url:        "",
			available:  false,
			primary:    "general",
			categories: []Category{},
		},
		{
			name:       "garbage url is unavailable",
			url:        "::::not-a-url",
			available:  false,
			primary:    "general",
			categories: []Category{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.url)
			assert.Equal(t, tt.available, result.Available)
			assert.Equal(t, tt.primary, result.PrimaryType)
			assert.Equal(t, tt.categories, result.Categories)
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	result := Classify("https://GitHub.com/Acme/Widget")
	assert.True(t, result.Has(CategoryRepository))
	assert.Equal(t, "repository", result.PrimaryType)
}

func TestClassifyUnavailableHasUnknownPageType(t *testing.T) {
	result := Classify("%%%")
	assert.False(t, result.Available)
	assert.Equal(t, "unknown", result.PageType)
}
