package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/gstbill/internal/domain"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List and add clients stored in the remote project.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.InvoiceService.ListClients(ctx, appInstance.UserID())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		fmt.Printf("%-30s %-28s %-16s %s\n", "Name", "Email", "GSTIN", "State")
		fmt.Println("--------------------------------------------------------------------------------")

		for _, client := range clients {
			fmt.Printf("%-30s %-28s %-16s %s\n",
				truncate(client.Name, 30),
				truncate(client.Email, 28),
				truncate(client.GSTIN, 16),
				truncate(client.StateName, 14),
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client := domain.NewClient(args[0])
		client.Email, _ = cmd.Flags().GetString("email")
		client.Phone, _ = cmd.Flags().GetString("phone")
		client.Address, _ = cmd.Flags().GetString("address")
		client.GSTIN, _ = cmd.Flags().GetString("gstin")
		client.StateName, _ = cmd.Flags().GetString("state")
		client.StateCode, _ = cmd.Flags().GetString("state-code")

		if err := appInstance.InvoiceService.SaveClient(ctx, appInstance.UserID(), client); err != nil {
			return fmt.Errorf("failed to add client: %w", err)
		}

		fmt.Printf("Added client %q\n", client.Name)
		return nil
	},
}

func init() {
	clientsAddCmd.Flags().String("email", "", "Contact email")
	clientsAddCmd.Flags().String("phone", "", "Contact phone")
	clientsAddCmd.Flags().String("address", "", "Billing address")
	clientsAddCmd.Flags().String("gstin", "", "GSTIN/UIN")
	clientsAddCmd.Flags().String("state", "", "State name")
	clientsAddCmd.Flags().String("state-code", "", "State code")

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
}

// truncate shortens a string for table display
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
