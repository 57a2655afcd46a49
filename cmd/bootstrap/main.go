// Package main provides the bootstrap CLI for provisioning an EC2
// instance's web server at boot.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for bootstrap
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "EC2 Web Server Bootstrap Tool",
		Long: `bootstrap provisions a web server on an EC2 instance at boot time.

It is intended to be invoked from the instance's user data and supports:
  - Minimal provisioning (install, start, one-line hello page)
  - Full provisioning (metadata-rich status page with verification)
  - Standalone verification of an already-provisioned host
  - Inspecting instance metadata over IMDSv2`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (defaults apply when omitted)")

	rootCmd.AddCommand(
		newMinimalCmd(&configPath),
		newFullCmd(&configPath),
		newVerifyCmd(&configPath),
		newMetadataCmd(&configPath),
		newRenderCmd(&configPath),
	)

	return rootCmd
}
