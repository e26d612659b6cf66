package cmd

import "github.com/spf13/cobra"

type rootOptions struct {
	envFile   string
	verbosity int
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	app := &app{}

	rootCmd := &cobra.Command{
		Use:   "pfconn",
		Short: "Provision the Contoso prompt flow connections",
		Long: "pfconn reads the Contoso service endpoints and keys from the environment (or a .env file) " +
			"and creates or updates the aoai-connection, contoso-cosmos and contoso-search connections " +
			"in the local connection store. Running it without a subcommand provisions all three.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wired, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProvision(cmd, app, false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file read for missing variables; the process environment wins")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newProvisionCmd(app),
		newConnectionCmd(app),
	)

	return rootCmd
}
