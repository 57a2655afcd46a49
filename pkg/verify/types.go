// Package verify provides post-deployment checks against the freshly
// provisioned web server.
package verify

// CheckStatus represents the outcome of a verification check.
type CheckStatus int

const (
	// StatusOK indicates the check passed.
	StatusOK CheckStatus = iota
	// StatusFailed indicates the server responded but not as expected.
	StatusFailed
	// StatusError indicates the check could not be performed at all.
	StatusError
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Check represents a single verification result.
type Check struct {
	ID      string      // Unique identifier, e.g. "http-status"
	Name    string      // Display name
	Status  CheckStatus // Outcome
	Message string      // Detail (status code seen, marker count, error)
}

// CheckID constants for individual checks.
const (
	IDHTTPStatus = "http-status"
	IDContent    = "content-marker"
)

// Summary aggregates check outcomes.
type Summary struct {
	Total  int
	OK     int
	Failed int
	Errors int
}

// Summarize tallies a set of checks.
func Summarize(checks []Check) Summary {
	var summary Summary
	for _, check := range checks {
		summary.Total++
		switch check.Status {
		case StatusOK:
			summary.OK++
		case StatusFailed:
			summary.Failed++
		case StatusError:
			summary.Errors++
		}
	}
	return summary
}

// Passed reports whether every check succeeded.
func (s Summary) Passed() bool {
	return s.Failed == 0 && s.Errors == 0
}
