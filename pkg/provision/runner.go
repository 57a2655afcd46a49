package provision

import (
	"fmt"
	"time"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/logging"
	"github.com/sirupsen/logrus"
)

// Runner executes steps in order and records their outcomes. A fatal
// step failure stops execution; the remaining steps of that batch are
// recorded as skipped.
type Runner struct {
	logger  *logrus.Logger
	policy  *Policy
	results []Result
}

// NewRunner creates a Runner logging through logger and classifying
// failures with policy.
func NewRunner(logger *logrus.Logger, policy *Policy) *Runner {
	return &Runner{logger: logger, policy: policy}
}

// Results returns a copy of the outcomes recorded so far.
func (r *Runner) Results() []Result {
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

// Run executes the given steps sequentially. It returns an error only
// when a fatal step fails (or a step has no policy entry); advisory
// failures are logged and swallowed.
func (r *Runner) Run(steps ...Step) error {
	for i, step := range steps {
		severity, err := r.policy.SeverityFor(step.ID)
		if err != nil {
			r.skipFrom(steps[i:])
			return err
		}

		start := time.Now()
		runErr := step.Run()
		elapsed := time.Since(start)

		result := Result{
			StepID:   step.ID,
			Name:     step.Name,
			Severity: severity,
			Duration: elapsed,
		}

		if runErr == nil {
			result.Status = StatusOK
			r.results = append(r.results, result)
			r.logger.WithField("step", step.ID).Infof("%s %s", logging.MarkerOK, step.Name)
			continue
		}

		result.Status = StatusFailed
		result.Err = runErr
		r.results = append(r.results, result)

		if severity == SeverityFatal {
			r.logger.WithField("step", step.ID).Errorf("%s %s: %v", logging.MarkerFailed, step.Name, runErr)
			r.skipFrom(steps[i+1:])
			return fmt.Errorf("step %s failed: %w", step.ID, runErr)
		}

		r.logger.WithField("step", step.ID).Warnf("%s %s: %v (continuing)", logging.MarkerWarn, step.Name, runErr)
	}
	return nil
}

// skipFrom records the remaining steps as skipped.
func (r *Runner) skipFrom(steps []Step) {
	for _, step := range steps {
		severity, _ := r.policy.SeverityFor(step.ID)
		r.results = append(r.results, Result{
			StepID:   step.ID,
			Name:     step.Name,
			Severity: severity,
			Status:   StatusSkipped,
		})
	}
}
