package main

import (
	"context"
	"io"

	"github.com/dmitrijs2005/rentkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/rentkeeper/internal/client/cli"
	"github.com/dmitrijs2005/rentkeeper/internal/client/config"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/spf13/cobra"
)

const configHelp = `Configuration flags (read before the command):
  -a URL     backend base URL
  -d PATH    local state database
  -r SECS    request timeout
  -i SECS    online check interval
  -l LEVEL   log level: debug, info, warn, error
  -j         log as JSON
  -c FILE    JSON config file

Environment variables RENTKEEPER_* and a .env file are read as well.`

func newRootCmd(cfg *config.Config, log logging.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "rentkeeper",
		Short:         "Rental contract book client",
		Long:          "rentkeeper keeps an agency's rental contracts in a Directus backend.\n\n" + configHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cfg, log)
		},
	}

	root.AddCommand(
		replCmd(cfg, log),
		listCmd(cfg, log),
		statsCmd(cfg, log),
		versionCmd(),
	)
	return root
}

func replCmd(cfg *config.Config, log logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cfg, log)
		},
	}
}

func listCmd(cfg *config.Config, log logging.Logger) *cobra.Command {
	var (
		search     string
		sortExpiry bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the contracts of the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, log, cmd.OutOrStdout(), func(ctx context.Context, app *cli.App) error {
				return app.ListMatching(ctx, search, sortExpiry)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only tenants whose name contains this text")
	cmd.Flags().BoolVar(&sortExpiry, "sort-expiry", false, "order by end date, soonest first")
	return cmd
}

func statsCmd(cfg *config.Config, log logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print totals, active and expired contracts and distinct clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, log, cmd.OutOrStdout(), func(ctx context.Context, app *cli.App) error {
				return app.Stats(ctx)
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func runInteractive(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Root(ctx)
	return nil
}

// withApp opens the app, restores the saved session and runs fn once.
func withApp(ctx context.Context, cfg *config.Config, log logging.Logger, out io.Writer, fn func(context.Context, *cli.App) error) error {
	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()
	app.SetOutput(out)

	if err := app.Start(ctx); err != nil {
		return err
	}
	return fn(ctx, app)
}
