package cmd

import (
	"fmt"

	connrender "github.com/bnema/pfconn/internal/adapters/render/connections"
	"github.com/bnema/pfconn/internal/application"
	"github.com/spf13/cobra"
)

func newProvisionCmd(app *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create or update the Contoso connections",
		Long: "Create or update aoai-connection, contoso-cosmos and contoso-search from " +
			"CONTOSO_AI_SERVICES_KEY, CONTOSO_AI_SERVICES_ENDPOINT, COSMOS_ENDPOINT, COSMOS_KEY, " +
			"CONTOSO_SEARCH_ENDPOINT and CONTOSO_SEARCH_KEY.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProvision(cmd, app, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and validate the connections without storing them")

	return cmd
}

func runProvision(cmd *cobra.Command, app *app, dryRun bool) error {
	out := cmd.OutOrStdout()

	var writeErr error
	_, err := app.provisioner.Provision(cmd.Context(), application.ProvisionOptions{
		DryRun: dryRun,
		OnEvent: func(event application.ProvisionEvent) {
			if writeErr != nil {
				return
			}

			switch event.Kind {
			case application.ProvisionStarted:
				verb := "Creating"
				if event.DryRun {
					verb = "Would create"
				}
				_, writeErr = fmt.Fprintf(out, "%s connection %s...\n", verb, event.Step)
			case application.ProvisionCompleted:
				rendered, err := connrender.RenderYAML(event.Connection)
				if err != nil {
					writeErr = err
					return
				}
				_, writeErr = fmt.Fprint(out, rendered)
			}
		},
	})
	if err != nil {
		return err
	}

	return writeErr
}
