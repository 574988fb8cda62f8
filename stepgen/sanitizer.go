package stepgen

import (
	"context"
	"regexp"
	"strings"

	"github.com/forgelabs-io/synthetics-forge/logger"
)

// stepMarker is the substring that identifies a verification step inside
// generated content. Output without at least one marker is unusable.
const stepMarker = "step("

// minScriptLength is the threshold below which surviving content is treated
// as empty and replaced by the fallback fragment.
const minScriptLength = 20

// codeFences are stripped before line filtering. Longer fences first so that
// "```ts" is not left as "ts" by the bare "```" replacement.
var codeFences = []string{"```typescript", "```javascript", "```ts", "```"}

// Rule pairs a denied pattern with the reason it is denied. Rules are
// evaluated per line, in order; the first match drops the line.
type Rule struct {
	Pattern   *regexp.Regexp
	Rationale string
}

// denyRules is the safety contract for generated step content. Generated
// steps must never alter navigation, scheduling, or tagging, and must never
// reach outside the page: the journey template owns all of that.
var denyRules = []Rule{
	{regexp.MustCompile(`(?i)monitor\.use`), "monitor/schedule overrides are owned by deploy flags"},
	{regexp.MustCompile(`(?i)import\s`), "imports are provided by the template"},
	{regexp.MustCompile(`(?i)require\s*\(`), "module loading is not allowed in steps"},
	{regexp.MustCompile(`(?i)exec\(|spawn\(|fork\(`), "process control is not allowed in steps"},
	{regexp.MustCompile(`(?i)fs\.`), "filesystem access is not allowed in steps"},
	{regexp.MustCompile(`(?i)child_process`), "child processes are not allowed in steps"},
	{regexp.MustCompile(`(?i)await\s+page\.goto\(`), "navigation is owned by the template"},
}

// fallbackScript is substituted whenever filtering leaves no usable steps.
// It is already in sanitized form: Sanitize(fallbackScript) == fallbackScript.
const fallbackScript = `step('Verify page loads', async () => {
    const t = await page.title();
    if (t && t.trim()) {
      await expect(page).toHaveTitle(/.+/);
    }
    const body = page.locator('body');
    await expect(body).toBeVisible();
  });`

// Sanitizer filters generated step content against the denylist. It never
// fails and always returns usable text; re-sanitizing its own output yields
// the same output.
type Sanitizer struct {
	logger logger.Logger
	rules  []Rule
}

// NewSanitizer creates a sanitizer with the fixed denylist.
func NewSanitizer(log logger.Logger) *Sanitizer {
	return &Sanitizer{logger: log, rules: denyRules}
}

// Rules exposes the active rule set for diagnostics.
func (s *Sanitizer) Rules() []Rule {
	return s.rules
}

// Sanitize strips code fences, drops leading blank lines and every line
// matching a denied pattern, and substitutes the fallback fragment when the
// survivors contain no step marker or are shorter than the minimum length.
func (s *Sanitizer) Sanitize(ctx context.Context, text string) string {
	cleaned := strings.TrimSpace(text)
	for _, fence := range codeFences {
		cleaned = strings.ReplaceAll(cleaned, fence, "")
	}

	var kept []string
	for _, line := range strings.Split(cleaned, "\n") {
		if strings.TrimSpace(line) == "" && len(kept) == 0 {
			continue
		}
		if rule := s.match(line); rule != nil {
			s.logger.Warn(ctx, "dropped unsafe generated line", map[string]interface{}{
				"line":      strings.TrimSpace(line),
				"rationale": rule.Rationale,
			})
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	safe := strings.TrimSpace(strings.Join(kept, "\n"))

	stepCount := strings.Count(safe, stepMarker)
	if stepCount == 0 || len(safe) < minScriptLength {
		s.logger.Warn(ctx, "insufficient generated content, using fallback", map[string]interface{}{
			"steps":  stepCount,
			"length": len(safe),
		})
		return fallbackScript
	}

	s.logger.Debug(ctx, "sanitized generated content", map[string]interface{}{
		"steps":  stepCount,
		"length": len(safe),
	})
	return safe
}

func (s *Sanitizer) match(line string) *Rule {
	for i := range s.rules {
		if s.rules[i].Pattern.MatchString(line) {
			return &s.rules[i]
		}
	}
	return nil
}

// JoinFragments renders heuristic fragments into the raw text form the
// sanitizer accepts. Heuristic output passes through the same safety gate as
// model output; there is exactly one path into the template.
func JoinFragments(fragments []Fragment) string {
	bodies := make([]string, 0, len(fragments))
	for _, f := range fragments {
		bodies = append(bodies, f.Body)
	}
	return strings.Join(bodies, "\n\n")
}
