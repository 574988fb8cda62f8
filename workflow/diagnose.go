package workflow

import (
	"context"
)

// InitializeResult reports which generation capabilities are usable.
type InitializeResult struct {
	Status              string `json:"status"`
	PlaywrightAvailable bool   `json:"playwright_available"`
	PlaywrightVersion   string `json:"playwright_version,omitempty"`
	PromptGeneration    bool   `json:"prompt_generation_available"`
	GenerationMode      string `json:"generation_mode"`
	Message             string `json:"message"`
}

// Initialize probes the local toolchain and reports whether enhanced test
// generation is available. It is safe to call repeatedly.
func (s *Service) Initialize(ctx context.Context) *InitializeResult {
	available, version := s.pusher.CheckPlaywright(ctx)

	mode := "standard"
	message := "Playwright not available, using standard test generation"
	if available {
		mode = "enhanced"
		message = "Playwright available for enhanced test generation"
	}

	s.logger.Info(ctx, "intelligence check completed", map[string]interface{}{
		"playwright_available": available,
		"generation_mode":      mode,
		"prompt_generation":    s.promptGen.Available(),
	})

	return &InitializeResult{
		Status:              "success",
		PlaywrightAvailable: available,
		PlaywrightVersion:   version,
		PromptGeneration:    s.promptGen.Available(),
		GenerationMode:      mode,
		Message:             message,
	}
}

// DiagnoseResult summarizes the deployment configuration with key material
// masked.
type DiagnoseResult struct {
	Status          string            `json:"status"`
	Configuration   map[string]string `json:"configuration"`
	RequiredCheck   map[string]bool   `json:"required_check"`
	DeploymentReady bool              `json:"deployment_ready"`
	Recommendations []string          `json:"recommendations"`
}

// Diagnose reports whether the configured credentials are sufficient for
// deployment. The API key never appears unmasked in the response.
func (s *Service) Diagnose(ctx context.Context) *DiagnoseResult {
	creds := s.config.Credentials

	hasURL := creds.KibanaURL != ""
	hasKey := creds.APIKey != ""
	ready := hasURL && hasKey

	recommendations := []string{}
	if hasURL {
		recommendations = append(recommendations, "Kibana URL configured")
	} else {
		recommendations = append(recommendations, "Missing Kibana URL")
	}
	if hasKey {
		recommendations = append(recommendations, "API key configured")
	} else {
		recommendations = append(recommendations, "Missing API key")
	}
	if ready {
		recommendations = append(recommendations, "Ready for deployment")
	} else {
		recommendations = append(recommendations, "Missing required credentials")
	}

	return &DiagnoseResult{
		Status: "success",
		Configuration: map[string]string{
			"kibana_url": creds.KibanaURL,
			"api_key":    maskSecret(creds.APIKey),
			"project_id": creds.ProjectID,
			"space":      creds.Space,
			"workdir":    s.config.Workdir,
		},
		RequiredCheck: map[string]bool{
			"kibana_url": hasURL,
			"api_key":    hasKey,
			"project_id": creds.ProjectID != "",
			"space":      creds.Space != "",
		},
		DeploymentReady: ready,
		Recommendations: recommendations,
	}
}

// maskSecret keeps a short identifying prefix of key material and hides the
// rest.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) > 8 {
		return secret[:8] + "..."
	}
	return "***"
}
