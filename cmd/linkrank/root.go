package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/linkrank/internal/delivery/cli"
)

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive menu.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkrank",
		Short: "Crawl a site and rank its pages by links and keyword occurrences",
		Long: `linkrank crawls every page reachable from a seed URL, scores each page by
the links pointing at it and by the occurrences of a keyword in its body, and
prints the resulting ranking.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMenuCmd,
	}

	cmd.PersistentFlags().String("env-file", ".env", "Path to the .env configuration file")

	cmd.AddCommand(NewServeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	menu := cli.NewMenu(a.runner, a.searcher, a.cfg.SeedURL, a.cfg.KeywordList(), cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
	return menu.Run(ctx)
}
