package domain

import "time"

// RunState is the state of a feedback workflow run
type RunState string

// workflow run states
const (
	RunPending   RunState = "pending"
	RunAnalyzing RunState = "analyzing"
	RunStoring   RunState = "storing"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// Terminal reports whether the run will not make progress anymore
func (s RunState) Terminal() bool {
	return s == RunCompleted || s == RunFailed
}

// WorkflowParams are the inputs of a feedback workflow run
type WorkflowParams struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	SourceID string `json:"source_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`
}

// WorkflowResult is what a completed run returns
type WorkflowResult struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	AnalysisResult
}

// WorkflowRun is the durable record of one workflow instance
type WorkflowRun struct {
	ID        string
	Params    WorkflowParams
	State     RunState
	Analysis  *AnalysisResult // cached once the analyze step has finished
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunID returns the workflow run id for the feedback item
func RunID(feedbackID string) string {
	return "workflow-" + feedbackID
}
