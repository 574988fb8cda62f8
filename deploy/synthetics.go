package deploy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/monitor"
)

const (
	// pushTimeout caps one CLI invocation. Pushes routinely take 30-60s
	// because the CLI bundles the project before uploading.
	pushTimeout = 120 * time.Second

	// probeTimeout caps the playwright availability check.
	probeTimeout = 5 * time.Second

	// defaultProjectID and defaultSpace match the CLI's own defaults, so the
	// corresponding flags are omitted when they would be redundant.
	defaultProjectID = "mcp-synthetics-demo"
	defaultSpace     = "default"

	redactedKey = "***"
)

// Pusher deploys a journey file and probes the local toolchain.
type Pusher interface {
	Push(ctx context.Context, req Request) (*Result, error)
	CheckPlaywright(ctx context.Context) (bool, string)
}

// commandRunner executes one process and returns its captured output. The
// indirection exists so tests can exercise outcome classification without
// spawning npx.
type commandRunner func(ctx context.Context, workdir, stdin, name string, args ...string) (stdout, stderr string, exitCode int, err error)

// CLIPusher shells out to the @elastic/synthetics CLI.
type CLIPusher struct {
	creds  Credentials
	logger logger.Logger
	run    commandRunner
}

func NewCLIPusher(creds Credentials, l logger.Logger) *CLIPusher {
	creds.KibanaURL = monitor.CleanKibanaURL(creds.KibanaURL)
	return &CLIPusher{
		creds:  creds,
		logger: l,
		run:    runCommand,
	}
}

// SetRunner replaces process execution, for tests.
func (c *CLIPusher) SetRunner(run commandRunner) {
	c.run = run
}

// Push invokes `npx @elastic/synthetics push` against req.FilePath. The CLI
// prompts for confirmation before uploading, so "y" is written to stdin
// upfront. The returned Result always carries the redacted command and the
// full captured output, regardless of outcome.
func (c *CLIPusher) Push(ctx context.Context, req Request) (*Result, error) {
	args := c.pushArgs(req)

	result := &Result{
		Command: redactCommand("npx", args, c.creds.APIKey),
	}

	c.logger.Info(ctx, "pushing journey to synthetics backend", map[string]interface{}{
		"test_name": req.TestName,
		"file_path": req.FilePath,
		"command":   result.Command,
	})

	runCtx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	stdout, stderr, exitCode, err := c.run(runCtx, req.WorkingDirectory, "y\n", "npx", args...)
	result.Stdout = stdout
	result.Stderr = stderr
	result.ExitCode = exitCode

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.Outcome = OutcomeTimedOut
		c.logger.Warn(ctx, "synthetics push timed out", map[string]interface{}{
			"test_name":       req.TestName,
			"timeout_seconds": int(pushTimeout.Seconds()),
		})
		return result, nil
	}
	if err != nil && exitCode < 0 {
		result.Outcome = OutcomeFailed
		c.logger.Error(ctx, "synthetics CLI could not be started", map[string]interface{}{
			"error": err.Error(),
		})
		return result, nil
	}
	if exitCode != 0 {
		result.Outcome = OutcomeFailed
		c.logger.Warn(ctx, "synthetics push failed", map[string]interface{}{
			"test_name": req.TestName,
			"exit_code": exitCode,
		})
		return result, nil
	}

	combined := stdout + "\n" + stderr
	result.MonitorURL = parseMonitorURL(combined)
	result.MonitorID = parseMonitorID(combined)

	if result.MonitorURL == "" {
		result.Outcome = OutcomeDeployedNoURL
		result.MonitorURL = c.creds.KibanaURL + "/app/synthetics"
	} else {
		result.Outcome = OutcomeDeployed
	}

	c.logger.Info(ctx, "synthetics push succeeded", map[string]interface{}{
		"test_name":   req.TestName,
		"monitor_url": result.MonitorURL,
		"monitor_id":  result.MonitorID,
	})
	return result, nil
}

// CheckPlaywright reports whether the playwright CLI resolves through npx,
// together with its version string when it does.
func (c *CLIPusher) CheckPlaywright(ctx context.Context) (bool, string) {
	runCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	stdout, _, exitCode, err := c.run(runCtx, "", "", "npx", "playwright", "--version")
	if err != nil || exitCode != 0 {
		return false, ""
	}
	return true, strings.TrimSpace(stdout)
}

func (c *CLIPusher) pushArgs(req Request) []string {
	return buildPushArgs(c.creds, req)
}

func buildPushArgs(creds Credentials, req Request) []string {
	args := []string{
		"@elastic/synthetics", "push", req.FilePath,
		"--auth", creds.APIKey,
		"--url", creds.KibanaURL,
		"--locations", strings.Join(req.Locations, ","),
		"--schedule", strconv.Itoa(req.ScheduleMinutes),
	}
	if creds.ProjectID != "" && creds.ProjectID != defaultProjectID {
		args = append(args, "--id", creds.ProjectID)
	}
	if creds.Space != "" && creds.Space != defaultSpace {
		args = append(args, "--space", creds.Space)
	}
	return append(args, "--yes")
}

// ManualCommand renders the push invocation for copy-paste use. The API key
// is replaced with a placeholder the operator fills in themselves.
func ManualCommand(creds Credentials, req Request) string {
	creds.KibanaURL = monitor.CleanKibanaURL(creds.KibanaURL)
	return redactCommand("npx", buildPushArgs(creds, req), creds.APIKey)
}

func redactCommand(name string, args []string, secret string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		if secret != "" && arg == secret {
			arg = redactedKey
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// runCommand is the production commandRunner. A negative exit code means the
// process never ran.
func runCommand(ctx context.Context, workdir, stdin, name string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workdir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
			err = fmt.Errorf("starting %s: %w", name, err)
		}
	}
	return stdout.String(), stderr.String(), exitCode, err
}
