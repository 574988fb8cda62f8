// Package deploy pushes composed journey files to the synthetics backend by
// shelling out to the @elastic/synthetics CLI. The CLI is modeled as a narrow
// port so the rest of the server can be tested without spawning processes.
package deploy

// Credentials identify the Kibana deployment target. The API key must never
// appear in any displayed command; see Result.Command.
type Credentials struct {
	KibanaURL string
	APIKey    string
	ProjectID string
	Space     string
}

// Request describes one push invocation.
type Request struct {
	FilePath         string
	TestName         string
	WebsiteURL       string
	Locations        []string
	ScheduleMinutes  int
	WorkingDirectory string
}

// Outcome classifies how a push invocation ended.
type Outcome string

const (
	// OutcomeDeployed means the CLI exited zero and a monitor URL was parsed
	// from its output.
	OutcomeDeployed Outcome = "deployed"

	// OutcomeDeployedNoURL means the CLI exited zero but no monitor URL could
	// be parsed; the default synthetics app URL is substituted.
	OutcomeDeployedNoURL Outcome = "deployed_no_url"

	// OutcomeFailed means the CLI exited nonzero or could not be started.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimedOut means the CLI ran past the hard timeout. The journey
	// file still exists; manual deployment is the recommended recovery.
	OutcomeTimedOut Outcome = "timed_out"
)

// Result is everything the caller learns from a push attempt. Stdout and
// stderr are captured in full; Command is the invocation with the API key
// redacted, safe for display.
type Result struct {
	Outcome    Outcome `json:"outcome"`
	ExitCode   int     `json:"exit_code"`
	Stdout     string  `json:"stdout"`
	Stderr     string  `json:"stderr"`
	MonitorURL string  `json:"monitor_url,omitempty"`
	MonitorID  string  `json:"monitor_id,omitempty"`
	Command    string  `json:"command"`
}

// Deployed reports whether the push reached the backend.
func (r *Result) Deployed() bool {
	return r.Outcome == OutcomeDeployed || r.Outcome == OutcomeDeployedNoURL
}
