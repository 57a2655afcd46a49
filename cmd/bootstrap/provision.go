package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/config"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/logging"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/provision"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/report"
)

// newMinimalCmd creates the minimal subcommand
func newMinimalCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "minimal",
		Short: "Minimal provisioning: install, start, hello page",
		Long: `Install the web server package, update the system, start and enable
the service, and write a one-line page containing the machine's hostname.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProvision(cmd, *configPath, false)
		},
	}
}

// newFullCmd creates the full subcommand
func newFullCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "full",
		Short: "Full provisioning with metadata page and verification",
		Long: `Provision the web server, collect instance metadata over IMDSv2,
render the status page, fix ownership and permissions, restart the
service, and run post-deployment checks. Step failures are handled
per the built-in policy table: fatal steps abort, advisory steps log
and continue.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProvision(cmd, *configPath, true)
		},
	}
}

// runProvision executes one of the two pipelines against the host.
func runProvision(cmd *cobra.Command, configPath string, full bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	pipeline, err := provision.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	var results []provision.Result
	if full {
		results, err = pipeline.Full(cmd.Context())
	} else {
		results, err = pipeline.Minimal(cmd.Context())
	}

	report.Steps(cmd.OutOrStdout(), results)
	return err
}
