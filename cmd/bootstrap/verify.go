package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/config"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/report"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/verify"
)

// newVerifyCmd creates the verify subcommand
func newVerifyCmd(configPath *string) *cobra.Command {
	var marker string
	var minimal bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run post-deployment checks against the local web server",
		Long: `Check that the web server answers with HTTP 200 and that the page
contains the expected content marker. During provisioning these checks
are advisory; run standalone, a failing check makes the command exit
non-zero so it can gate automation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if marker == "" {
				marker = cfg.FullMark
				if minimal {
					marker = cfg.MinimalMark
				}
			}

			checker := verify.NewChecker(cfg.VerifyURL, cfg.VerifyTimeout)
			checks := checker.All(cmd.Context(), marker)

			report.Checks(cmd.OutOrStdout(), checks)

			if !verify.Summarize(checks).Passed() {
				return errors.New("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&marker, "marker", "m", "", "Content marker to look for (defaults to the full-provisioning marker)")
	cmd.Flags().BoolVar(&minimal, "minimal", false, "Check for the minimal-provisioning marker instead")

	return cmd
}
