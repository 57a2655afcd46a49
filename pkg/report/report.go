package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/provision"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/verify"
)

// Steps writes a one-line-per-step summary of a provisioning run.
func Steps(w io.Writer, results []provision.Result) {
	fmt.Fprintln(w, TitleStyle.Render("Provisioning steps"))

	var ok, failed, skipped int
	for _, r := range results {
		switch r.Status {
		case provision.StatusOK:
			ok++
			fmt.Fprintf(w, "  %s %s %s\n",
				SuccessStyle.Render("ok"), r.Name,
				MutedStyle.Render(fmt.Sprintf("(%s)", r.Duration.Round(time.Millisecond))))
		case provision.StatusFailed:
			failed++
			style := ErrorStyle
			if r.Severity == provision.SeverityAdvisory {
				style = WarningStyle
			}
			fmt.Fprintf(w, "  %s %s: %v\n", style.Render(r.Status.String()), r.Name, r.Err)
		case provision.StatusSkipped:
			skipped++
			fmt.Fprintf(w, "  %s %s\n", MutedStyle.Render("skipped"), r.Name)
		}
	}

	fmt.Fprintf(w, "\n%d ok, %d failed, %d skipped\n", ok, failed, skipped)
}

// Checks writes the verification check results.
func Checks(w io.Writer, checks []verify.Check) {
	fmt.Fprintln(w, TitleStyle.Render("Verification"))

	for _, c := range checks {
		style := SuccessStyle
		if c.Status != verify.StatusOK {
			style = ErrorStyle
		}
		fmt.Fprintf(w, "  %s %s: %s\n", style.Render(c.Status.String()), c.Name, c.Message)
	}

	summary := verify.Summarize(checks)
	if summary.Passed() {
		fmt.Fprintf(w, "\n%s\n", SuccessStyle.Render("all checks passed"))
	} else {
		fmt.Fprintf(w, "\n%s\n", ErrorStyle.Render(fmt.Sprintf("%d of %d checks failed", summary.Failed+summary.Errors, summary.Total)))
	}
}
