package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelabs-io/synthetics-forge/deploy"
)

func TestInitializeEnhancedMode(t *testing.T) {
	h := newHarness(t, testCreds())

	result := h.service.Initialize(context.Background())
	assert.Equal(t, "success", result.Status)
	assert.True(t, result.PlaywrightAvailable)
	assert.Equal(t, "Version 1.46.0", result.PlaywrightVersion)
	assert.Equal(t, "enhanced", result.GenerationMode)
	assert.True(t, result.PromptGeneration)
}

func TestInitializeStandardMode(t *testing.T) {
	h := newHarness(t, testCreds())
	h.pusher.playwright = false

	result := h.service.Initialize(context.Background())
	assert.False(t, result.PlaywrightAvailable)
	assert.Equal(t, "standard", result.GenerationMode)
	assert.Empty(t, result.PlaywrightVersion)
}

func TestDiagnoseMasksAPIKey(t *testing.T) {
	h := newHarness(t, testCreds())

	result := h.service.Diagnose(context.Background())
	require.Equal(t, "success", result.Status)
	assert.True(t, result.DeploymentReady)
	assert.Equal(t, "secret-a...", result.Configuration["api_key"])
	assert.NotContains(t, result.Configuration["api_key"], "secret-api-key")
	assert.True(t, result.RequiredCheck["kibana_url"])
	assert.Contains(t, result.Recommendations, "Ready for deployment")
}

func TestDiagnoseMissingCredentials(t *testing.T) {
	h := newHarness(t, deploy.Credentials{ProjectID: "demo", Space: "default"})

	result := h.service.Diagnose(context.Background())
	assert.False(t, result.DeploymentReady)
	assert.False(t, result.RequiredCheck["kibana_url"])
	assert.False(t, result.RequiredCheck["api_key"])
	assert.Contains(t, result.Recommendations, "Missing Kibana URL")
	assert.Contains(t, result.Recommendations, "Missing API key")
	assert.Empty(t, result.Configuration["api_key"])
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		expected string
	}{
		{"empty", "", ""},
		{"short", "abc", "***"},
		{"boundary", "12345678", "***"},
		{"long", "1234567890abcdef", "12345678..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.secret))
		})
	}
}
