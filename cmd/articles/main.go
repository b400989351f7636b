// Command articles runs the articles HTTP API.
//
//	articles serve     start the HTTP server (default)
//	articles migrate   bring the database schema up to date and exit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "articles",
		Short:         "Articles HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd())

	// bare "articles" behaves like "articles serve"
	root.RunE = serve.RunE

	return root
}
