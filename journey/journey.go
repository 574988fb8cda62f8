// Package journey composes Elastic Synthetics journey files. The template is
// fixed: a guarded navigation step with the literal target URL, the sanitized
// generated-step region, then trailing screenshot and visibility steps.
// Generated content can never change what the template owns.
package journey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Dir is the directory under the working directory where journey files
	// are written.
	Dir = "synthetic_tests"

	// Ext is the journey file extension expected by the synthetics CLI.
	Ext = ".journey.ts"

	beginMarker = "// ==== BEGIN GENERATED STEPS (safe region) ===="
	endMarker   = "// ==== END GENERATED STEPS ===="
)

// Params are the inputs to template composition.
type Params struct {
	TestName   string
	WebsiteURL string
	Tags       []string
	Steps      string // sanitized step block, inserted verbatim
}

// CleanString removes characters that would break the template: backticks
// become single quotes and NUL bytes are stripped.
func CleanString(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// FileSafeName lowercases the test name and replaces spaces with underscores.
// The same name always maps to the same file; a re-run overwrites it.
func FileSafeName(testName string) string {
	return strings.ReplaceAll(strings.ToLower(CleanString(testName)), " ", "_")
}

// FileName returns the journey file name for a test name.
func FileName(testName string) string {
	return FileSafeName(testName) + Ext
}

// Compose renders the full journey script. The navigation target is embedded
// by the template itself, outside the generated region.
func Compose(p Params) string {
	name := CleanString(p.TestName)
	url := CleanString(p.WebsiteURL)
	fileSafe := FileSafeName(p.TestName)

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	var b strings.Builder
	b.WriteString("import { journey, step, expect } from '@elastic/synthetics';\n\n")
	fmt.Fprintf(&b, "journey({\n  name: '%s',\n  tags: %s\n}, ({ page, params }) => {\n", name, tagsJSON)

	// Guarded nav: always load the target URL first.
	fmt.Fprintf(&b, "  step('Navigate to %s', async () => {\n", url)
	fmt.Fprintf(&b, "    await page.goto('%s');\n", url)
	b.WriteString("    await page.waitForLoadState('networkidle');\n  });\n\n")

	b.WriteString("  " + beginMarker + "\n")
	b.WriteString(indentSteps(p.Steps))
	b.WriteString("\n  " + endMarker + "\n\n")

	fmt.Fprintf(&b, "  step('Screenshot', async () => {\n    await page.screenshot({ path: '%s_screenshot.png' });\n  });\n", fileSafe)
	b.WriteString("  step('Body visible', async () => {\n    await expect(page.locator('body')).toBeVisible();\n  });\n")
	b.WriteString("});\n")

	return b.String()
}

// Write persists the composed script under <workdir>/synthetic_tests,
// creating the directory if absent and overwriting any previous file with
// the same normalized name. It returns the full path written.
func Write(workdir, testName, content string) (string, error) {
	dir := filepath.Join(workdir, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create test directory: %w", err)
	}

	path := filepath.Join(dir, FileName(testName))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write journey file: %w", err)
	}

	return path, nil
}

// indentSteps shifts the sanitized block to the journey body's indentation.
// Blank lines stay blank.
func indentSteps(steps string) string {
	lines := strings.Split(steps, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
