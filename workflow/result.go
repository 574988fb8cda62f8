package workflow

// Workflow statuses. Failures surface as data in the result payload; only
// programmer errors (bad arguments) become Go errors.
const (
	StatusInProgress     = "in_progress"
	StatusCompleted      = "completed"
	StatusPartialSuccess = "partial_success"
	StatusFailed         = "failed"
)

// Step keys, numbered in execution order.
const (
	StepConnection   = "1_connection"
	StepTestCreation = "2_test_creation"
	StepDeployment   = "3_deployment"
)

// StepEntry records the outcome of one workflow step.
type StepEntry struct {
	Status string                 `json:"status"`
	Result map[string]interface{} `json:"result"`
}

// Result is the payload every tool invocation returns.
type Result struct {
	WorkflowStatus string               `json:"workflow_status"`
	Steps          map[string]StepEntry `json:"steps"`
	TestFile       string               `json:"test_file,omitempty"`
	MonitorURL     string               `json:"monitor_url,omitempty"`
	MonitorID      string               `json:"monitor_id,omitempty"`
	ManualCommand  string               `json:"manual_deploy_command,omitempty"`
	Source         string               `json:"generation_source,omitempty"`
	RecordID       string               `json:"record_id,omitempty"`
	Message        string               `json:"message,omitempty"`
}

func newResult() *Result {
	return &Result{
		WorkflowStatus: StatusInProgress,
		Steps:          map[string]StepEntry{},
	}
}

func (r *Result) setStep(key, status string, fields map[string]interface{}) {
	r.Steps[key] = StepEntry{Status: status, Result: fields}
}

func (r *Result) fail(step string, fields map[string]interface{}, message string) *Result {
	r.setStep(step, StatusFailed, fields)
	r.WorkflowStatus = StatusFailed
	r.Message = message
	return r
}
