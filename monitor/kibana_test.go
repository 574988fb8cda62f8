package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanKibanaURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "https://kibana.example.com", "https://kibana.example.com"},
		{"trailing slash removed", "https://kibana.example.com/", "https://kibana.example.com"},
		{"synthetics app path stripped", "https://kibana.example.com/app/synthetics", "https://kibana.example.com"},
		{"synthetics subpath stripped", "https://kibana.example.com/app/synthetics/monitors", "https://kibana.example.com"},
		{"doubled slashes collapsed", "https://kibana.example.com//s//space", "https://kibana.example.com/s/space"},
		{"scheme slashes preserved", "https://kibana.example.com/s/space", "https://kibana.example.com/s/space"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanKibanaURL(tt.input))
		})
	}
}
