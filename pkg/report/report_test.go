package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/provision"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/verify"
)

func TestSteps(t *testing.T) {
	results := []provision.Result{
		{StepID: "install-package", Name: "install httpd", Status: provision.StatusOK, Duration: 3 * time.Second},
		{StepID: "enable-service", Name: "enable httpd", Status: provision.StatusFailed,
			Severity: provision.SeverityAdvisory, Err: errors.New("unit masked")},
		{StepID: "restart-service", Name: "restart httpd", Status: provision.StatusSkipped},
	}

	var buf bytes.Buffer
	Steps(&buf, results)

	out := buf.String()
	assert.Contains(t, out, "Provisioning steps")
	assert.Contains(t, out, "install httpd")
	assert.Contains(t, out, "enable httpd: unit masked")
	assert.Contains(t, out, "restart httpd")
	assert.Contains(t, out, "1 ok, 1 failed, 1 skipped")
}

func TestChecks(t *testing.T) {
	t.Run("all passing", func(t *testing.T) {
		checks := []verify.Check{
			{ID: verify.IDHTTPStatus, Name: "HTTP status", Status: verify.StatusOK, Message: "status 200"},
			{ID: verify.IDContent, Name: "Content marker", Status: verify.StatusOK, Message: `marker "Hello AWS" found 1 time(s)`},
		}

		var buf bytes.Buffer
		Checks(&buf, checks)

		out := buf.String()
		assert.Contains(t, out, "Verification")
		assert.Contains(t, out, "status 200")
		assert.Contains(t, out, "all checks passed")
	})

	t.Run("with failure", func(t *testing.T) {
		checks := []verify.Check{
			{ID: verify.IDHTTPStatus, Name: "HTTP status", Status: verify.StatusFailed, Message: "expected status 200, got 503"},
			{ID: verify.IDContent, Name: "Content marker", Status: verify.StatusOK, Message: "found"},
		}

		var buf bytes.Buffer
		Checks(&buf, checks)

		assert.Contains(t, buf.String(), "1 of 2 checks failed")
	})
}
