package deploy

import (
	"regexp"
	"strings"

	"github.com/forgelabs-io/synthetics-forge/internal/uuidutil"
)

var (
	monitorURLPattern = regexp.MustCompile(`https://[^\s]+/app/synthetics/monitor[^\s]*`)
	monitorIDPattern  = regexp.MustCompile(`[a-f0-9-]{36}`)
)

// parseMonitorURL scans CLI output for a direct monitor link. The CLI
// occasionally prints doubled path separators when the Kibana base URL carries
// a trailing slash; those are repaired before the URL is returned.
func parseMonitorURL(output string) string {
	match := monitorURLPattern.FindString(output)
	if match == "" {
		return ""
	}
	match = strings.TrimRight(match, ".,;)")
	return strings.Replace(match, "//app/synthetics", "/app/synthetics", 1)
}

// parseMonitorID scans CLI output for the backend-assigned monitor UUID. Only
// lines that mention a monitor are considered, since journey files and API
// keys can also contain UUID-shaped substrings.
func parseMonitorID(output string) string {
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "monitor id") && !strings.Contains(lower, "created monitor") {
			continue
		}
		if match := monitorIDPattern.FindString(lower); match != "" && uuidutil.IsValid(match) {
			return match
		}
	}
	return ""
}
