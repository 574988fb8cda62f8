// Package workflow orchestrates the classify, generate, sanitize, compose,
// deploy pipeline behind the tool endpoints. Each operation returns a Result
// payload; pipeline failures are recorded inside it rather than escaping as
// errors.
package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/forgelabs-io/synthetics-forge/classify"
	"github.com/forgelabs-io/synthetics-forge/deploy"
	"github.com/forgelabs-io/synthetics-forge/journey"
	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/monitor"
	"github.com/forgelabs-io/synthetics-forge/stepgen"
	"github.com/forgelabs-io/synthetics-forge/storage"
)

var (
	// ErrMissingWebsiteURL is returned when a request has no target URL.
	ErrMissingWebsiteURL = errors.New("website_url is required")

	// ErrMissingTestName is returned when a request has no test name.
	ErrMissingTestName = errors.New("test_name is required")

	// ErrMissingPrompt is returned when the prompt-driven tool is called
	// without a prompt.
	ErrMissingPrompt = errors.New("prompt is required")
)

// Config holds the workflow's deployment target and working directory.
type Config struct {
	Workdir     string
	Credentials deploy.Credentials
}

// Service owns the pipeline collaborators. Construct once at startup.
type Service struct {
	config    Config
	heuristic *stepgen.Heuristic
	promptGen *stepgen.PromptDriven
	sanitizer *stepgen.Sanitizer
	pusher    deploy.Pusher
	store     monitor.Store
	artifacts storage.ArtifactStore
	logger    logger.Logger

	now func() time.Time
}

// New creates a workflow service.
func New(
	config Config,
	heuristic *stepgen.Heuristic,
	promptGen *stepgen.PromptDriven,
	sanitizer *stepgen.Sanitizer,
	pusher deploy.Pusher,
	store monitor.Store,
	artifacts storage.ArtifactStore,
	log logger.Logger,
) *Service {
	config.Credentials.KibanaURL = monitor.CleanKibanaURL(config.Credentials.KibanaURL)
	return &Service{
		config:    config,
		heuristic: heuristic,
		promptGen: promptGen,
		sanitizer: sanitizer,
		pusher:    pusher,
		store:     store,
		artifacts: artifacts,
		logger:    log,
		now:       time.Now,
	}
}

// Request describes one test-creation invocation.
type Request struct {
	WebsiteURL      string   `json:"website_url"`
	TestName        string   `json:"test_name"`
	Prompt          string   `json:"prompt,omitempty"`
	Locations       []string `json:"locations,omitempty"`
	ScheduleMinutes int      `json:"schedule_minutes,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

func (r *Request) validate(requirePrompt bool) error {
	if strings.TrimSpace(r.WebsiteURL) == "" {
		return ErrMissingWebsiteURL
	}
	if strings.TrimSpace(r.TestName) == "" {
		return ErrMissingTestName
	}
	if requirePrompt && strings.TrimSpace(r.Prompt) == "" {
		return ErrMissingPrompt
	}
	return nil
}

// normalize snaps locations and schedule onto the allowed sets.
func (r *Request) normalize() {
	r.Locations = monitor.NormalizeLocations(r.Locations)
	r.ScheduleMinutes = monitor.NormalizeSchedule(r.ScheduleMinutes)
}

// checkConnection verifies the deployment credentials are present. No network
// call is made; reachability is the CLI's concern.
func (s *Service) checkConnection(result *Result) bool {
	missingURL := s.config.Credentials.KibanaURL == ""
	missingKey := s.config.Credentials.APIKey == ""
	if missingURL || missingKey {
		result.setStep(StepConnection, StatusFailed, map[string]interface{}{
			"error": "missing required credentials",
			"missing": map[string]bool{
				"kibana_url": missingURL,
				"api_key":    missingKey,
			},
		})
		return false
	}
	result.setStep(StepConnection, "success", map[string]interface{}{
		"message": "credentials detected",
	})
	return true
}

// generateSteps produces the sanitized step block for the request and reports
// which generator produced it. The prompt-driven path degrades to heuristics
// whenever it yields nothing.
func (s *Service) generateSteps(ctx context.Context, req Request, cls classify.Result, usePrompt bool) (string, monitor.Source) {
	genReq := stepgen.Request{
		WebsiteURL: req.WebsiteURL,
		TestName:   req.TestName,
		Prompt:     req.Prompt,
	}

	if usePrompt {
		if raw := s.promptGen.Generate(ctx, genReq, cls); raw != "" {
			return s.sanitizer.Sanitize(ctx, raw), monitor.SourceModel
		}
	}

	fragments := s.heuristic.Generate(ctx, genReq, cls)
	return s.sanitizer.Sanitize(ctx, stepgen.JoinFragments(fragments)), monitor.SourceHeuristic
}

// composeAndRecord writes the journey file, archives a copy, and persists the
// history record. Archive and history failures are logged but do not stop the
// workflow; the file on disk is what deployment needs.
func (s *Service) composeAndRecord(ctx context.Context, req Request, steps string, source monitor.Source, result *Result) (string, *monitor.Monitor, bool) {
	content := journey.Compose(journey.Params{
		TestName:   req.TestName,
		WebsiteURL: req.WebsiteURL,
		Tags:       req.Tags,
		Steps:      steps,
	})

	filePath, err := journey.Write(s.config.Workdir, req.TestName, content)
	if err != nil {
		result.fail(StepTestCreation, map[string]interface{}{
			"error": err.Error(),
		}, "failed to write test file")
		return "", nil, false
	}

	if s.artifacts != nil {
		key := storage.ArchiveKey(journey.FileSafeName(req.TestName), s.now())
		if err := s.artifacts.Save(ctx, key, strings.NewReader(content)); err != nil {
			s.logger.Warn(ctx, "failed to archive journey copy", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	record := &monitor.Monitor{
		TestName:        req.TestName,
		WebsiteURL:      req.WebsiteURL,
		FilePath:        filePath,
		Locations:       strings.Join(req.Locations, ","),
		ScheduleMinutes: req.ScheduleMinutes,
		Source:          source,
		Status:          monitor.StatusCreated,
	}
	if s.store != nil {
		if err := s.store.Create(ctx, record); err != nil {
			s.logger.Error(ctx, "failed to persist monitor record", map[string]interface{}{
				"test_name": req.TestName,
				"error":     err.Error(),
			})
			record = nil
		}
	} else {
		record = nil
	}

	result.setStep(StepTestCreation, "success", map[string]interface{}{
		"message":   "test file created",
		"test_file": filePath,
		"test_name": req.TestName,
	})
	result.TestFile = filePath
	result.Source = string(source)
	if record != nil {
		result.RecordID = record.ID.String()
	}
	return filePath, record, true
}
