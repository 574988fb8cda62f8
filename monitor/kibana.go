package monitor

import (
	"regexp"
	"strings"
)

// doubledSlashes collapses repeated slashes anywhere except after a scheme.
var doubledSlashes = regexp.MustCompile(`([^:])//+`)

// CleanKibanaURL normalizes a Kibana base URL so that derived monitor links
// never carry doubled slashes: any /app/synthetics suffix is stripped (it is
// re-appended when links are built), trailing slashes are removed, and
// repeated slashes are collapsed.
func CleanKibanaURL(kibanaURL string) string {
	if kibanaURL == "" {
		return kibanaURL
	}

	if idx := strings.Index(kibanaURL, "/app/synthetics"); idx != -1 {
		kibanaURL = kibanaURL[:idx]
	}

	cleaned := strings.TrimRight(kibanaURL, "/")
	return doubledSlashes.ReplaceAllString(cleaned, "$1/")
}
