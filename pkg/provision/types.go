// Package provision runs the boot-time provisioning pipelines. Steps
// execute strictly in order; whether a failing step aborts the run is
// decided by an explicit policy table rather than ad-hoc control flow.
package provision

import "time"

// Severity classifies how a step failure is handled.
type Severity int

const (
	// SeverityFatal aborts the run on failure.
	SeverityFatal Severity = iota
	// SeverityAdvisory logs the failure and continues.
	SeverityAdvisory
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// StepStatus is the recorded outcome of a step.
type StepStatus int

const (
	// StatusOK indicates the step completed.
	StatusOK StepStatus = iota
	// StatusFailed indicates the step returned an error.
	StatusFailed
	// StatusSkipped indicates the step never ran because an earlier
	// fatal step failed.
	StatusSkipped
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Step IDs, matching the entries of policy.yaml.
const (
	IDUpdatePackages = "update-packages"
	IDInstallPackage = "install-package"
	IDStartService   = "start-service"
	IDEnableService  = "enable-service"
	IDCollectMeta    = "collect-metadata"
	IDWritePage      = "write-page"
	IDRenderPage     = "render-page"
	IDSetOwnership   = "set-ownership"
	IDSetPermissions = "set-permissions"
	IDRestartService = "restart-service"
	IDVerifyStatus   = "verify-status"
	IDVerifyContent  = "verify-content"
	IDWriteSummary   = "write-summary"
	IDRelaxLogPerms  = "relax-log-permissions"
)

// Step is a single provisioning action.
type Step struct {
	ID   string
	Name string
	Run  RunFunc
}

// RunFunc performs the step's work.
type RunFunc func() error

// Result records the outcome of one step.
type Result struct {
	StepID   string
	Name     string
	Severity Severity
	Status   StepStatus
	Err      error
	Duration time.Duration
}

// FailedStepIDs returns the IDs of failed steps, in execution order.
func FailedStepIDs(results []Result) []string {
	var ids []string
	for _, r := range results {
		if r.Status == StatusFailed {
			ids = append(ids, r.StepID)
		}
	}
	return ids
}
