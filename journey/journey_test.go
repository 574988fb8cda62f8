package journey

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSafeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces to underscores", "Widget Repo", "widget_repo"},
		{"already safe", "checkout", "checkout"},
		{"mixed case", "My Test Name", "my_test_name"},
		{"surrounding whitespace", "  Edge Case  ", "edge_case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileSafeName(tt.input))
		})
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "it's a test", CleanString("it`s a test"))
	assert.Equal(t, "nonul", CleanString("no\x00nul"))
	assert.Equal(t, "trimmed", CleanString("  trimmed  "))
}

func TestComposePreservesNavigationTarget(t *testing.T) {
	// Even hostile step content cannot change where the journey navigates:
	// the target URL lives in the fixed template region.
	script := Compose(Params{
		TestName:   "Widget Repo",
		WebsiteURL: "https://github.com/acme/widget",
		Tags:       []string{"synthetics"},
		Steps:      "step('noop', async () => { console.log('generated'); });",
	})

	assert.Contains(t, script, "await page.goto('https://github.com/acme/widget');")
	assert.Contains(t, script, "step('Navigate to https://github.com/acme/widget'")

	// Template ordering: nav before the generated region, trailing checks after.
	navIdx := strings.Index(script, "page.goto")
	beginIdx := strings.Index(script, "BEGIN GENERATED STEPS")
	endIdx := strings.Index(script, "END GENERATED STEPS")
	shotIdx := strings.Index(script, "page.screenshot")
	bodyIdx := strings.Index(script, "toBeVisible()")
	require.True(t, navIdx < beginIdx)
	require.True(t, beginIdx < endIdx)
	require.True(t, endIdx < shotIdx)
	require.True(t, shotIdx < bodyIdx)
}

func TestComposeIncludesTagsAndName(t *testing.T) {
	script := Compose(Params{
		TestName:   "Checkout Flow",
		WebsiteURL: "https://shop.example.com",
		Tags:       []string{"prod", "critical"},
		Steps:      "step('x', async () => {});",
	})

	assert.Contains(t, script, "name: 'Checkout Flow'")
	assert.Contains(t, script, `tags: ["prod","critical"]`)
	assert.Contains(t, script, "checkout_flow_screenshot.png")
}

func TestComposeNilTags(t *testing.T) {
	script := Compose(Params{
		TestName:   "t",
		WebsiteURL: "https://example.com",
		Steps:      "step('x', async () => {});",
	})
	assert.Contains(t, script, "tags: []")
}

func TestWriteCreatesDirectoryAndOverwrites(t *testing.T) {
	workdir := t.TempDir()

	path, err := Write(workdir, "Widget Repo", "first version")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workdir, Dir, "widget_repo.journey.ts"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first version", string(content))

	// Same normalized name overwrites; no versioning.
	_, err = Write(workdir, "widget repo", "second version")
	require.NoError(t, err)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second version", string(content))
}
