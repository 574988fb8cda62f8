package stepgen

import (
	"context"
	"strings"
	"testing"

	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer() (*Sanitizer, *logger.TestLogger) {
	log := logger.NewTestLogger()
	return NewSanitizer(log), log
}

func TestSanitizeKeepsSafeSteps(t *testing.T) {
	s, _ := newTestSanitizer()

	input := `step('Check heading', async () => {
  const heading = page.locator('h1');
  await expect(heading).toBeVisible();
});`

	got := s.Sanitize(context.Background(), input)
	assert.Equal(t, input, got)
}

func TestSanitizeStripsCodeFences(t *testing.T) {
	s, _ := newTestSanitizer()

	fenced := "```typescript\nstep('Check title', async () => {\n  await expect(page).toHaveTitle(/.+/);\n});\n```"
	got := s.Sanitize(context.Background(), fenced)

	assert.NotContains(t, got, "```")
	assert.Contains(t, got, "step('Check title'")
}

func TestSanitizeDropsDenylistedLines(t *testing.T) {
	tests := []struct {
		name    string
		badLine string
	}{
		{"schedule override", "monitor.use({ schedule: 1 });"},
		{"import statement", "import { chromium } from 'playwright';"},
		{"require call", "const fs = require('fs');"},
		{"process exec", "exec('rm -rf /');"},
		{"process spawn", "spawn('sh');"},
		{"filesystem access", "fs.writeFileSync('x', 'y');"},
		{"child process module", "const cp = child_process;"},
		{"navigation call", "await page.goto('https://evil.example.com');"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, log := newTestSanitizer()

			input := "step('Check body', async () => {\n" +
				tt.badLine + "\n" +
				"  await expect(page.locator('body')).toBeVisible();\n});"

			got := s.Sanitize(context.Background(), input)
			assert.NotContains(t, got, tt.badLine)

			// Every drop must be audit-logged with a rationale.
			var logged bool
			for _, entry := range log.Entries() {
				if entry.Message == "dropped unsafe generated line" {
					logged = true
					assert.NotEmpty(t, entry.Fields["rationale"])
				}
			}
			assert.True(t, logged, "expected a dropped-line log entry")
		})
	}
}

func TestSanitizeFallsBackWhenEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n\n  "},
		{"no step markers", "const x = page.locator('body');"},
		{"too short", "step("},
		{"everything denied", "import x from 'y';\nawait page.goto('https://a.example');"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSanitizer()
			got := s.Sanitize(context.Background(), tt.input)
			assert.Equal(t, fallbackScript, got)
		})
	}
}

func TestSanitizeOutputAlwaysUsable(t *testing.T) {
	inputs := []string{
		"",
		"garbage with no steps",
		"```\nimport fs from 'fs';\n```",
		"step('ok', async () => { await expect(page.locator('body')).toBeVisible(); });",
	}

	s, _ := newTestSanitizer()
	for _, input := range inputs {
		got := s.Sanitize(context.Background(), input)
		assert.Contains(t, got, stepMarker)
		assert.GreaterOrEqual(t, len(got), minScriptLength)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"step('a', async () => {\n  await expect(page.locator('body')).toBeVisible();\n});",
		"```ts\nstep('b', async () => {\n  import x from 'y';\n  const t = await page.title();\n  if (t) { await expect(page).toHaveTitle(/.+/); }\n});\n```",
		fallbackScript,
	}

	s, _ := newTestSanitizer()
	for _, input := range inputs {
		once := s.Sanitize(context.Background(), input)
		twice := s.Sanitize(context.Background(), once)
		assert.Equal(t, once, twice)
	}
}

func TestSanitizeDropsLeadingBlankLines(t *testing.T) {
	s, _ := newTestSanitizer()

	got := s.Sanitize(context.Background(), "\n\n\nstep('Check body', async () => {\n  await expect(page.locator('body')).toBeVisible();\n});")
	require.True(t, strings.HasPrefix(got, "step("))
}

func TestJoinFragments(t *testing.T) {
	fragments := []Fragment{
		{Name: "one", Body: "  step('one', async () => {});"},
		{Name: "two", Body: "  step('two', async () => {});"},
	}

	joined := JoinFragments(fragments)
	assert.Equal(t, 2, strings.Count(joined, stepMarker))
	assert.Contains(t, joined, "step('one'")
	assert.Contains(t, joined, "step('two'")
}
