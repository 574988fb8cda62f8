package workflow

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelabs-io/synthetics-forge/deploy"
	"github.com/forgelabs-io/synthetics-forge/internal/uuidutil"
	"github.com/forgelabs-io/synthetics-forge/monitor"
)

func testRequest() Request {
	return Request{
		WebsiteURL:      "https://github.com/acme/widget",
		TestName:        "Widget Repo Check",
		Locations:       []string{"uk"},
		ScheduleMinutes: 14,
		Tags:            []string{"generated"},
	}
}

func TestCreateTestWritesFileAndManualCommand(t *testing.T) {
	h := newHarness(t, testCreds())

	result, err := h.service.CreateTest(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.WorkflowStatus)
	assert.Equal(t, "success", result.Steps[StepConnection].Status)
	assert.Equal(t, "success", result.Steps[StepTestCreation].Status)
	assert.NotContains(t, result.Steps, StepDeployment)

	content, readErr := os.ReadFile(result.TestFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "journey({")
	assert.Contains(t, string(content), "https://github.com/acme/widget")
	assert.True(t, strings.HasSuffix(result.TestFile, "widget_repo_check.journey.ts"))

	assert.True(t, strings.HasPrefix(result.ManualCommand, "npx @elastic/synthetics push"))
	assert.NotContains(t, result.ManualCommand, "secret-api-key")
	assert.Contains(t, result.ManualCommand, "--locations united_kingdom")
	assert.Contains(t, result.ManualCommand, "--schedule 15")

	assert.Equal(t, 0, h.pusher.pushCalls)
	assert.Equal(t, string(monitor.SourceHeuristic), result.Source)
}

func TestCreateTestPersistsHistoryRecord(t *testing.T) {
	h := newHarness(t, testCreds())
	ctx := context.Background()

	result, err := h.service.CreateTest(ctx, testRequest())
	require.NoError(t, err)
	require.NotEmpty(t, result.RecordID)

	record, err := h.store.GetByID(ctx, uuidutil.MustParse(result.RecordID))
	require.NoError(t, err)
	assert.Equal(t, "Widget Repo Check", record.TestName)
	assert.Equal(t, monitor.StatusCreated, record.Status)
	assert.Equal(t, "united_kingdom", record.Locations)
	assert.Equal(t, 15, record.ScheduleMinutes)
}

func TestCreateTestWithoutCredentials(t *testing.T) {
	h := newHarness(t, deploy.Credentials{})

	result, err := h.service.CreateTest(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPartialSuccess, result.WorkflowStatus)
	assert.Equal(t, StatusFailed, result.Steps[StepConnection].Status)
	assert.Equal(t, "success", result.Steps[StepTestCreation].Status)
	assert.NotEmpty(t, result.TestFile)
}

func TestCreateAndDeploySuccess(t *testing.T) {
	h := newHarness(t, testCreds())
	ctx := context.Background()

	result, err := h.service.CreateAndDeploy(ctx, testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.WorkflowStatus)
	assert.Equal(t, "success", result.Steps[StepDeployment].Status)
	assert.Equal(t, "https://kibana.example.com/app/synthetics/monitor/abc", result.MonitorURL)
	assert.Equal(t, 1, h.pusher.pushCalls)

	// Normalized values reach the pusher.
	assert.Equal(t, []string{"united_kingdom"}, h.pusher.gotRequest.Locations)
	assert.Equal(t, 15, h.pusher.gotRequest.ScheduleMinutes)

	record, err := h.store.GetByID(ctx, uuidutil.MustParse(result.RecordID))
	require.NoError(t, err)
	assert.Equal(t, monitor.StatusDeployed, record.Status)
	require.NotNil(t, record.MonitorURL)
	assert.Equal(t, result.MonitorURL, *record.MonitorURL)
}

func TestCreateAndDeployMissingCredentialsFailsEarly(t *testing.T) {
	h := newHarness(t, deploy.Credentials{})

	result, err := h.service.CreateAndDeploy(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, result.WorkflowStatus)
	assert.Equal(t, StatusFailed, result.Steps[StepConnection].Status)
	assert.Empty(t, result.TestFile)
	assert.Equal(t, 0, h.pusher.pushCalls)
}

func TestCreateAndDeployPushFailure(t *testing.T) {
	h := newHarness(t, testCreds())
	h.pusher.result = &deploy.Result{Outcome: deploy.OutcomeFailed, ExitCode: 1, Stderr: "bad key"}
	ctx := context.Background()

	result, err := h.service.CreateAndDeploy(ctx, testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPartialSuccess, result.WorkflowStatus)
	assert.Equal(t, StatusFailed, result.Steps[StepDeployment].Status)
	assert.NotEmpty(t, result.TestFile)

	record, err := h.store.GetByID(ctx, uuidutil.MustParse(result.RecordID))
	require.NoError(t, err)
	assert.Equal(t, monitor.StatusDeployFailed, record.Status)
	require.NotNil(t, record.ErrorMessage)
	assert.Contains(t, *record.ErrorMessage, "exited with code 1")
}

func TestCreateAndDeployTimeoutOffersManualCommand(t *testing.T) {
	h := newHarness(t, testCreds())
	h.pusher.result = &deploy.Result{Outcome: deploy.OutcomeTimedOut}
	ctx := context.Background()

	result, err := h.service.CreateAndDeploy(ctx, testRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPartialSuccess, result.WorkflowStatus)
	assert.Equal(t, StatusFailed, result.Steps[StepDeployment].Status)
	assert.True(t, strings.HasPrefix(result.ManualCommand, "npx @elastic/synthetics push"))

	record, err := h.store.GetByID(ctx, uuidutil.MustParse(result.RecordID))
	require.NoError(t, err)
	assert.Equal(t, monitor.StatusDeployTimeout, record.Status)
}

func TestCreateFromPromptUsesModelOutput(t *testing.T) {
	h := newHarness(t, testCreds())
	req := testRequest()
	req.Prompt = "verify the pricing page shows a price and the cart works"

	result, err := h.service.CreateFromPrompt(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.WorkflowStatus)
	assert.Equal(t, string(monitor.SourceModel), result.Source)
	assert.Equal(t, 1, h.textGen.calls)

	content, readErr := os.ReadFile(result.TestFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "Check pricing is shown")
}

func TestCreateFromPromptFallsBackToHeuristics(t *testing.T) {
	h := newHarness(t, testCreds())
	h.textGen.output = ""
	req := testRequest()
	req.Prompt = "verify the repo readme renders"

	result, err := h.service.CreateFromPrompt(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.WorkflowStatus)
	assert.Equal(t, string(monitor.SourceHeuristic), result.Source)

	content, readErr := os.ReadFile(result.TestFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "step(")
}

func TestValidationErrors(t *testing.T) {
	h := newHarness(t, testCreds())
	ctx := context.Background()

	_, err := h.service.CreateTest(ctx, Request{TestName: "x"})
	assert.ErrorIs(t, err, ErrMissingWebsiteURL)

	_, err = h.service.CreateTest(ctx, Request{WebsiteURL: "https://example.com"})
	assert.ErrorIs(t, err, ErrMissingTestName)

	_, err = h.service.CreateFromPrompt(ctx, Request{WebsiteURL: "https://example.com", TestName: "x"})
	assert.ErrorIs(t, err, ErrMissingPrompt)
}
