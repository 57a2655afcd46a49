package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/config"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/imds"
	"github.com/jaspreet-dot-casa/bootstrap/pkg/webpage"
)

// newRenderCmd creates the render subcommand
func newRenderCmd(configPath *string) *cobra.Command {
	var variant, output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the HTML page without provisioning",
		Long: `Render the minimal or full status page. The full variant queries the
metadata service; the minimal variant uses the machine's hostname.
Writes to stdout unless --output is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			var template string
			var vars *webpage.TemplateVars

			switch variant {
			case "minimal":
				host, hostErr := os.Hostname()
				if hostErr != nil {
					return fmt.Errorf("failed to determine hostname: %w", hostErr)
				}
				template = webpage.MinimalTemplate
				vars = &webpage.TemplateVars{HOSTNAME: host}
			case "full":
				client := imds.NewClient(
					imds.WithBaseURL(cfg.IMDSBaseURL),
					imds.WithTokenTTL(cfg.TokenTTL),
					imds.WithTimeout(cfg.IMDSTimeout),
				)
				template = webpage.StatusTemplate
				vars = webpage.VarsFromIdentity(client.Identity(cmd.Context()), time.Now())
			default:
				return fmt.Errorf("unknown variant %q (want minimal or full)", variant)
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), webpage.Render(template, vars))
				return nil
			}
			return webpage.Write(template, vars, output)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "full", "Page variant to render (minimal or full)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page to this path instead of stdout")

	return cmd
}
