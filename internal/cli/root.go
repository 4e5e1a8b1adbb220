package cli

import (
	"github.com/spf13/cobra"

	"github.com/andy/gstbill/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "gstbill",
	Short: "GST invoicing for small businesses",
	Long: `Gstbill manages clients and GST tax invoices against a hosted Supabase
project, with printable Original/Duplicate/Triplicate exports.

By default, running gstbill without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(tuiCmd)
}
