// Package classify assigns semantic categories to a target URL based on its
// domain and path. Classification is pure string matching: it never fetches
// the page and never fails.
package classify

import (
	"net/url"
	"strings"
)

// Category is a closed-set semantic label for a website. New categories are
// never invented at runtime; downstream step generation only understands the
// values defined here.
type Category string

const (
	CategoryRepository    Category = "repository"
	CategoryEcommerce     Category = "ecommerce"
	CategoryBlog          Category = "blog"
	CategoryDocumentation Category = "documentation"
	CategorySocial        Category = "social"

	// PrimaryGeneral is the primary type reported when no category matches.
	PrimaryGeneral = "general"
)

// priorityOrder fixes both the evaluation order and the iteration order used
// by step generation. The first matching category becomes the primary type.
var priorityOrder = []Category{
	CategoryRepository,
	CategoryEcommerce,
	CategoryBlog,
	CategoryDocumentation,
	CategorySocial,
}

// repoHosts match on the domain only; a path mentioning "github" is not a
// repository.
var repoHosts = []string{"github.com", "gitlab.com", "bitbucket.org"}

var ecommercePatterns = []string{
	"shop", "store", "cart", "buy", "product", "checkout",
	"amazon", "ebay", "etsy",
}

var blogPatterns = []string{
	"blog", "news", "article", "post", "medium.com", "wordpress", "substack",
}

var docsPatterns = []string{
	"docs", "documentation", "wiki", "guide", "api", "readme",
}

// socialHosts match on the domain only.
var socialHosts = []string{
	"twitter.com", "facebook.com", "linkedin.com", "instagram.com", "tiktok.com",
}

// Result holds the outcome of classifying a single URL. It is computed fresh
// per request and never cached.
type Result struct {
	Available   bool       `json:"available"`
	Domain      string     `json:"domain"`
	Path        string     `json:"path"`
	PageType    string     `json:"page_type"`
	Categories  []Category `json:"website_types"`
	PrimaryType string     `json:"primary_type"`
}

// Has reports whether the result includes the given category.
func (r Result) Has(c Category) bool {
	for _, got := range r.Categories {
		if got == c {
			return true
		}
	}
	return false
}

// Classify parses the URL and tests its domain and path against the fixed
// per-category substring lists. A URL may match several categories at once;
// the priority order determines the primary type. Unparseable or hostless
// URLs degrade to an unavailable result with primary "general".
func Classify(rawURL string) Result {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return Result{
			Available:   false,
			PageType:    "unknown",
			Categories:  []Category{},
			PrimaryType: PrimaryGeneral,
		}
	}

	domain := strings.ToLower(parsed.Host)
	path := strings.ToLower(parsed.Path)

	result := Result{
		Available:  true,
		Domain:     domain,
		Path:       path,
		PageType:   "enhanced_analysis",
		Categories: []Category{},
	}

	for _, category := range priorityOrder {
		if matches(category, domain, path) {
			result.Categories = append(result.Categories, category)
		}
	}

	if len(result.Categories) > 0 {
		result.PrimaryType = string(result.Categories[0])
	} else {
		result.PrimaryType = PrimaryGeneral
	}

	return result
}

func matches(category Category, domain, path string) bool {
	switch category {
	case CategoryRepository:
		return containsAny(domain, repoHosts)
	case CategoryEcommerce:
		return containsAny(domain, ecommercePatterns) || containsAny(path, ecommercePatterns)
	case CategoryBlog:
		return containsAny(domain, blogPatterns) || containsAny(path, blogPatterns)
	case CategoryDocumentation:
		return containsAny(domain, docsPatterns) || containsAny(path, docsPatterns)
	case CategorySocial:
		return containsAny(domain, socialHosts)
	}
	return false
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
