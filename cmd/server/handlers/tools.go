package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/workflow"
)

// ToolsHandler exposes the tool surface over HTTP. Pipeline failures are
// reported inside the workflow result payload with status 200; only malformed
// requests produce 4xx.
type ToolsHandler struct {
	service *workflow.Service
	logger  logger.Logger
}

// NewToolsHandler creates a new tools handler.
func NewToolsHandler(service *workflow.Service, log logger.Logger) *ToolsHandler {
	return &ToolsHandler{service: service, logger: log}
}

// Initialize handles POST /api/v1/tools/initialize.
func (h *ToolsHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Initialize(r.Context()))
}

// Diagnose handles GET /api/v1/tools/diagnose.
func (h *ToolsHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Diagnose(r.Context()))
}

// CreateTest handles POST /api/v1/tools/tests.
func (h *ToolsHandler) CreateTest(w http.ResponseWriter, r *http.Request) {
	h.runTool(w, r, h.service.CreateTest)
}

// CreateAndDeploy handles POST /api/v1/tools/tests/deploy.
func (h *ToolsHandler) CreateAndDeploy(w http.ResponseWriter, r *http.Request) {
	h.runTool(w, r, h.service.CreateAndDeploy)
}

// CreateFromPrompt handles POST /api/v1/tools/tests/prompt.
func (h *ToolsHandler) CreateFromPrompt(w http.ResponseWriter, r *http.Request) {
	h.runTool(w, r, h.service.CreateFromPrompt)
}

type toolFunc func(ctx context.Context, req workflow.Request) (*workflow.Result, error)

func (h *ToolsHandler) runTool(w http.ResponseWriter, r *http.Request, tool toolFunc) {
	var req workflow.Request
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := tool(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "tool invocation failed", map[string]interface{}{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		respondError(w, http.StatusInternalServerError, "tool invocation failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func isValidationError(err error) bool {
	return errors.Is(err, workflow.ErrMissingWebsiteURL) ||
		errors.Is(err, workflow.ErrMissingTestName) ||
		errors.Is(err, workflow.ErrMissingPrompt)
}
