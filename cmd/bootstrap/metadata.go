package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/config"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/imds"
)

// newMetadataCmd creates the metadata subcommand
func newMetadataCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Print the instance identity fetched over IMDSv2",
		Long: `Query the instance metadata service for the attributes embedded in
the status page. Attributes that cannot be retrieved are shown as the
sentinel value the provisioner would embed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			client := imds.NewClient(
				imds.WithBaseURL(cfg.IMDSBaseURL),
				imds.WithTokenTTL(cfg.TokenTTL),
				imds.WithTimeout(cfg.IMDSTimeout),
			)
			id := client.Identity(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Instance ID:       %s\n", id.InstanceID)
			fmt.Fprintf(out, "Instance Type:     %s\n", id.InstanceType)
			fmt.Fprintf(out, "Availability Zone: %s\n", id.AvailabilityZone)
			fmt.Fprintf(out, "Public Hostname:   %s\n", id.PublicHostname)
			return nil
		},
	}
}
