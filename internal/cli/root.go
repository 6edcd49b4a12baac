// Package cli wires the ledger, filter and analytics packages into the
// pamoja command tree.
package cli

import (
	"github.com/spf13/cobra"

	"pamoja/internal/config"
	"pamoja/internal/ledger"
	"pamoja/internal/log"
)

// App holds the shared dependencies of all CLI commands.
type App struct {
	Store *ledger.Store
	Log   *log.Logger
	Cfg   *config.Config
}

// NewRootCmd creates the top-level "pamoja" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pamoja",
		Short:         "Charity ledger: donations, expenditures and impact analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReportCmd(app),
		newDonationsCmd(app),
		newProjectsCmd(app),
	)

	return root
}
