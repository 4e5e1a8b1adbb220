package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/render"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List and export GST tax invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		statusFilter, _ := cmd.Flags().GetString("status")

		invoices, err := appInstance.InvoiceService.ListInvoices(ctx, appInstance.UserID())
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		var shown int
		fmt.Printf("%-16s %-10s %-28s %16s  %s\n", "Number", "Date", "Client", "Amount", "Status")
		fmt.Println("------------------------------------------------------------------------------------")
		for _, inv := range invoices {
			if statusFilter != "" && !strings.EqualFold(statusFilter, string(inv.Status)) {
				continue
			}
			num := inv.InvoiceNumber
			if num == "" {
				num = "(draft)"
			}
			fmt.Printf("%-16s %-10s %-28s %16s  %s\n",
				truncate(num, 16),
				domain.FormatDate(inv.Date),
				truncate(inv.Client.Name, 28),
				domain.FormatINR(inv.TotalAmount),
				inv.Status,
			)
			shown++
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", shown)
		return nil
	},
}

var invoicesExportCmd = &cobra.Command{
	Use:   "export [invoice-number]",
	Short: "Export an invoice to pdf, html or txt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		formatFlag, _ := cmd.Flags().GetString("format")
		copiesFlag, _ := cmd.Flags().GetString("copies")
		outDir, _ := cmd.Flags().GetString("out")

		format, err := render.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		copies, err := render.CopySet(copiesFlag)
		if err != nil {
			return err
		}
		if outDir == "" {
			outDir = appInstance.Config.Export.OutputDir
		}

		invoices, err := appInstance.InvoiceService.ListInvoices(ctx, appInstance.UserID())
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		var target *domain.Invoice
		for _, inv := range invoices {
			if strings.EqualFold(inv.InvoiceNumber, args[0]) || inv.ID == args[0] {
				target = inv
				break
			}
		}
		if target == nil {
			return fmt.Errorf("invoice %q not found", args[0])
		}

		path, err := render.Export(target, appInstance.Config.Business, format, copies, outDir)
		if err != nil {
			return fmt.Errorf("failed to export invoice: %w", err)
		}

		fmt.Printf("Exported %s to %s\n", target.InvoiceNumber, path)
		return nil
	},
}

func init() {
	invoicesListCmd.Flags().String("status", "", "Filter by status (Pending, Finished, Delayed)")

	invoicesExportCmd.Flags().String("format", "pdf", "Export format: pdf, html or txt")
	invoicesExportCmd.Flags().String("copies", "all", "Copy set: all, original, duplicate or triplicate")
	invoicesExportCmd.Flags().String("out", "", "Output directory (defaults to the configured export dir)")

	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesExportCmd)
}
