package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paysession/internal/interfaces/cli/configcheck"
	"paysession/internal/interfaces/cli/server"
	"paysession/internal/interfaces/cli/session"
	"paysession/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "paysession",
		Short: "Paysession - payment session backend",
		Long:  `Paysession creates hosted checkout sessions with the Cashfree payment gateway for a browser frontend.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		session.NewCommand(),
		configcheck.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
