package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/pfconn/internal/adapters/connfile"
	connrender "github.com/bnema/pfconn/internal/adapters/render/connections"
	"github.com/bnema/pfconn/internal/domain"
	"github.com/spf13/cobra"
)

func newConnectionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connection",
		Aliases: []string{"connections", "conn"},
		Short:   "Manage stored connections",
	}

	cmd.AddCommand(
		newConnectionListCmd(app),
		newConnectionShowCmd(app),
		newConnectionCreateCmd(app),
		newConnectionDeleteCmd(app),
		newConnectionVerifyCmd(app),
	)

	return cmd
}

func newConnectionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connections, err := app.service.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				docs := make([]connrender.Document, 0, len(connections))
				for _, conn := range connections {
					docs = append(docs, connrender.NewDocument(conn))
				}
				return writeJSON(cmd, docs)
			}

			rendered, err := app.listRenderer(connections, connrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render connections: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func newConnectionShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one connection with its secrets scrubbed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.service.Get(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, connrender.NewDocument(conn))
			}

			return writeYAML(cmd, conn)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func newConnectionCreateCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create or update a connection from a YAML file",
		Long: "Create or update a connection from a YAML file. Values of the form ${env:VAR} " +
			"are read from the environment or the --env-file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connfile.Load(file, app.env)
			if err != nil {
				return err
			}

			ack, err := app.service.CreateOrUpdate(cmd.Context(), conn)
			if err != nil {
				return err
			}

			return writeYAML(cmd, ack)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "connection YAML file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newConnectionDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a connection and its stored secrets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted connection %s\n", args[0])
			return err
		},
	}
}

func newConnectionVerifyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <name>",
		Short: "Check that the service behind a connection accepts its credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			err := runVerifySpinner(cmd.Context(), cmd.ErrOrStderr(), name, func(ctx context.Context) error {
				return app.service.Verify(ctx, name)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Connection %s verified\n", name)
			return err
		},
	}
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeYAML(cmd *cobra.Command, conn domain.Connection) error {
	rendered, err := connrender.RenderYAML(conn)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}
