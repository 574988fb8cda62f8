package workflow

import (
	"context"
	"fmt"

	"github.com/forgelabs-io/synthetics-forge/classify"
	"github.com/forgelabs-io/synthetics-forge/deploy"
	"github.com/forgelabs-io/synthetics-forge/monitor"
)

// CreateTest composes and saves a journey file without deploying it. The
// result carries the exact push command to run by hand, with the API key
// redacted.
func (s *Service) CreateTest(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(false); err != nil {
		return nil, err
	}
	req.normalize()
	result := newResult()

	credsOK := s.checkConnection(result)

	cls := classify.Classify(req.WebsiteURL)
	steps, source := s.generateSteps(ctx, req, cls, false)

	filePath, _, ok := s.composeAndRecord(ctx, req, steps, source, result)
	if !ok {
		return result, nil
	}

	result.ManualCommand = deploy.ManualCommand(s.config.Credentials, deploy.Request{
		FilePath:        filePath,
		TestName:        req.TestName,
		WebsiteURL:      req.WebsiteURL,
		Locations:       req.Locations,
		ScheduleMinutes: req.ScheduleMinutes,
	})

	if credsOK {
		result.WorkflowStatus = StatusCompleted
		result.Message = fmt.Sprintf("Test created for %s; run the manual command to deploy", req.WebsiteURL)
	} else {
		result.WorkflowStatus = StatusPartialSuccess
		result.Message = "Test created, but credentials are missing; fill them in before deploying"
	}
	return result, nil
}

// CreateAndDeploy composes a journey file and pushes it immediately.
func (s *Service) CreateAndDeploy(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(false); err != nil {
		return nil, err
	}
	return s.createAndDeploy(ctx, req, false), nil
}

// CreateFromPrompt generates step content from the free-text prompt, falling
// back to heuristics when no text generator is configured or the call fails,
// then deploys the composed journey.
func (s *Service) CreateFromPrompt(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(true); err != nil {
		return nil, err
	}
	return s.createAndDeploy(ctx, req, true), nil
}

func (s *Service) createAndDeploy(ctx context.Context, req Request, usePrompt bool) *Result {
	req.normalize()
	result := newResult()

	if !s.checkConnection(result) {
		result.WorkflowStatus = StatusFailed
		result.Message = "Missing required credentials"
		return result
	}

	cls := classify.Classify(req.WebsiteURL)
	steps, source := s.generateSteps(ctx, req, cls, usePrompt)

	filePath, record, ok := s.composeAndRecord(ctx, req, steps, source, result)
	if !ok {
		return result
	}

	s.deployStep(ctx, req, filePath, record, result)
	return result
}

// deployStep pushes the journey file and folds the outcome into the result
// and the history record.
func (s *Service) deployStep(ctx context.Context, req Request, filePath string, record *monitor.Monitor, result *Result) {
	pushResult, err := s.pusher.Push(ctx, deploy.Request{
		FilePath:         filePath,
		TestName:         req.TestName,
		WebsiteURL:       req.WebsiteURL,
		Locations:        req.Locations,
		ScheduleMinutes:  req.ScheduleMinutes,
		WorkingDirectory: s.config.Workdir,
	})
	if err != nil {
		result.setStep(StepDeployment, StatusFailed, map[string]interface{}{
			"error": err.Error(),
		})
		result.WorkflowStatus = StatusPartialSuccess
		result.Message = "Test created but deployment failed"
		s.recordOutcome(ctx, record, monitor.SetStatus(monitor.StatusDeployFailed), monitor.SetErrorMessage(err.Error()))
		return
	}

	switch pushResult.Outcome {
	case deploy.OutcomeDeployed, deploy.OutcomeDeployedNoURL:
		result.setStep(StepDeployment, "success", map[string]interface{}{
			"message":     "deployed to synthetics backend",
			"monitor_url": pushResult.MonitorURL,
			"monitor_id":  pushResult.MonitorID,
		})
		result.WorkflowStatus = StatusCompleted
		result.MonitorURL = pushResult.MonitorURL
		result.MonitorID = pushResult.MonitorID
		result.Message = fmt.Sprintf("Successfully created and deployed browser test for %s", req.WebsiteURL)
		s.recordOutcome(ctx, record, monitor.SetDeployed(pushResult.MonitorURL, pushResult.MonitorID))

	case deploy.OutcomeTimedOut:
		result.setStep(StepDeployment, StatusFailed, map[string]interface{}{
			"error":      "push timed out after 120 seconds",
			"suggestion": "try the manual deployment command instead",
		})
		result.WorkflowStatus = StatusPartialSuccess
		result.ManualCommand = deploy.ManualCommand(s.config.Credentials, deploy.Request{
			FilePath:        filePath,
			TestName:        req.TestName,
			WebsiteURL:      req.WebsiteURL,
			Locations:       req.Locations,
			ScheduleMinutes: req.ScheduleMinutes,
		})
		result.Message = "Test created but deployment timed out"
		s.recordOutcome(ctx, record, monitor.SetStatus(monitor.StatusDeployTimeout), monitor.SetErrorMessage("push timed out"))

	default:
		result.setStep(StepDeployment, StatusFailed, map[string]interface{}{
			"error":     fmt.Sprintf("push exited with code %d", pushResult.ExitCode),
			"stderr":    pushResult.Stderr,
			"exit_code": pushResult.ExitCode,
		})
		result.WorkflowStatus = StatusPartialSuccess
		result.Message = "Test created but deployment failed"
		s.recordOutcome(ctx, record, monitor.SetStatus(monitor.StatusDeployFailed),
			monitor.SetErrorMessage(fmt.Sprintf("push exited with code %d", pushResult.ExitCode)))
	}
}

func (s *Service) recordOutcome(ctx context.Context, record *monitor.Monitor, setters ...monitor.UpdateSetter) {
	if record == nil || s.store == nil {
		return
	}
	if err := s.store.Update(ctx, record.ID, setters...); err != nil {
		s.logger.Error(ctx, "failed to update monitor record", map[string]interface{}{
			"record_id": record.ID.String(),
			"error":     err.Error(),
		})
	}
}
