package stepgen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/forgelabs-io/synthetics-forge/classify"
	"github.com/forgelabs-io/synthetics-forge/logger"
)

// systemContract is the fixed system-level contract every model call carries.
// It mirrors the sanitizer's denylist so that well-behaved output passes the
// safety gate untouched.
const systemContract = `You write ONLY the body steps for an Elastic Synthetics Playwright journey.

CRITICAL INSTRUCTIONS:
- You MUST create specific test steps based on the user's request
- Do NOT generate generic tests
- If the user asks to verify specific text or elements, create steps that actually check for those specific things
- Use page.locator() with specific selectors for the elements mentioned
- Use expect() assertions to verify the expected behavior

Constraints:
- Do NOT import anything (imports are provided)
- Do NOT call monitor.use or set schedules/tags/ids
- Do NOT navigate to other URLs; the harness already called page.goto(target)
- Write 2-6 clear step(...) blocks using Playwright
- Prefer robust selectors (roles, labels, text with expect(...) guards)
- Be resilient: wrap risky assertions in try/catch and log rather than fail hard

Output: RAW TypeScript code consisting solely of step(...) blocks.`

// approaches diversify the style of generated steps; one is picked at random
// per call.
var approaches = []string{
	"Focus on user interactions and form elements",
	"Emphasize visual elements and layout verification",
	"Prioritize navigation and link testing",
	"Check accessibility and semantic structure",
	"Verify content and data display",
}

// SampleParams are the sampling knobs passed to the text generator. They are
// randomized per call on purpose: prompt-driven output is expected to vary.
type SampleParams struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// TextGenerator is the external text-generation capability: given a system
// contract and a user payload it returns raw text or fails.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string, params SampleParams) (string, error)
}

// PromptDriven generates step content from a free-text prompt by delegating
// to a TextGenerator. Any failure degrades to an empty string so the caller
// can fall back to heuristic generation; errors never escape this component.
type PromptDriven struct {
	generator TextGenerator
	logger    logger.Logger

	// now feeds the per-call randomization of sampling parameters. Swapped
	// in tests.
	now func() time.Time
}

// NewPromptDriven creates a prompt-driven step generator. The generator may
// be nil, in which case every call reports unavailability.
func NewPromptDriven(gen TextGenerator, log logger.Logger) *PromptDriven {
	return &PromptDriven{
		generator: gen,
		logger:    log,
		now:       time.Now,
	}
}

// Available reports whether a text-generation capability is configured.
func (p *PromptDriven) Available() bool {
	return p.generator != nil
}

// SetClock overrides the wall clock used to seed sampling randomization.
func (p *PromptDriven) SetClock(now func() time.Time) {
	p.now = now
}

// Generate asks the model for step blocks satisfying the request's prompt.
// The returned text is unsanitized; an empty string means the capability was
// unavailable or the call failed.
func (p *PromptDriven) Generate(ctx context.Context, req Request, cls classify.Result) string {
	if p.generator == nil {
		p.logger.Info(ctx, "no text generator configured, falling back to heuristics", nil)
		return ""
	}

	rng := rand.New(rand.NewSource(p.now().UnixMilli() % 10000))
	params := SampleParams{
		Temperature: 0.7 + rng.Float64()*0.2,
		TopP:        0.85 + rng.Float64()*0.1,
		MaxTokens:   1200,
	}

	user := buildUserPayload(req, cls, approaches[rng.Intn(len(approaches))])

	raw, err := p.generator.GenerateText(ctx, systemContract, user, params)
	if err != nil {
		p.logger.Error(ctx, "text generation failed, falling back to heuristics", map[string]interface{}{
			"error": err.Error(),
			"url":   req.WebsiteURL,
		})
		return ""
	}
	if strings.TrimSpace(raw) == "" {
		p.logger.Warn(ctx, "text generator returned empty content", map[string]interface{}{
			"url": req.WebsiteURL,
		})
		return ""
	}

	p.logger.Info(ctx, "generated step content from prompt", map[string]interface{}{
		"url":         req.WebsiteURL,
		"chars":       len(raw),
		"temperature": params.Temperature,
		"top_p":       params.TopP,
	})
	return raw
}

// buildUserPayload embeds the user's prompt, the target URL, classification
// hints, and the chosen testing approach into the per-call payload.
func buildUserPayload(req Request, cls classify.Result, approach string) string {
	return fmt.Sprintf(`You are writing Playwright test steps for: %s

Website context: %s
Testing approach: %s

User's specific request: %s

Please generate 2-5 Playwright test steps that fulfill the user's request. Each step should:
- Use descriptive step names that explain what you're testing
- Use appropriate Playwright selectors (page.locator, getByRole, getByText, etc.)
- Include expect() assertions where appropriate
- Handle potential failures gracefully with try/catch where needed
- Be specific to the user's requirements

Write ONLY the step() blocks, no imports or other content.`,
		req.WebsiteURL, classificationHints(cls), approach, req.Prompt)
}

// classificationHints renders a short deterministic context line for the
// model; no external calls are made.
func classificationHints(cls classify.Result) string {
	names := make([]string, 0, len(cls.Categories))
	for _, c := range cls.Categories {
		names = append(names, string(c))
	}
	kinds := strings.Join(names, ", ")
	if kinds == "" {
		kinds = "general"
	}
	return fmt.Sprintf("Target appears to be: %s. Primary type: %s.", kinds, cls.PrimaryType)
}
