// Package cli exposes the invoice workflows as one-shot terminal commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"billing-tool/internal/app"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree over the given service. The owner is
// selected with --owner or the APP_OWNER_ID environment variable.
func NewRootCmd(svc app.ApplicationService) *cobra.Command {
	var ownerID int

	cmd := &cobra.Command{
		Use:           "billing",
		Short:         "Create, list and export invoices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().IntVar(&ownerID, "owner", defaultOwnerID(), "owner user id")

	cmd.AddCommand(newListCmd(svc, &ownerID))
	cmd.AddCommand(newCreateCmd(svc, &ownerID))
	cmd.AddCommand(newDeleteCmd(svc, &ownerID))
	cmd.AddCommand(newExportCmd(svc, &ownerID))
	cmd.AddCommand(newNextNumberCmd(svc, &ownerID))
	return cmd
}

func defaultOwnerID() int {
	if v := os.Getenv("APP_OWNER_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func newListCmd(svc app.ApplicationService, ownerID *int) *cobra.Command {
	var (
		search     string
		status     string
		sortBy     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices with their derived statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ListInvoices(cmd.Context(), *ownerID, app.ListInvoicesRequest{
				Search: search,
				Status: status,
				SortBy: sortBy,
			})
			if err != nil {
				return fmt.Errorf("listing invoices: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printInvoiceList(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match client name or invoice number")
	cmd.Flags().StringVar(&status, "status", "all", "filter by status (sent, due-soon, overdue, all)")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort key (date, amount, client, status)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")
	return cmd
}

func newCreateCmd(svc app.ApplicationService, ownerID *int) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice from a JSON document",
		Long:  "Reads an invoice request from the file given with -f, or from stdin when -f is omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}

			var req app.CreateInvoiceRequest
			if err := json.NewDecoder(in).Decode(&req); err != nil {
				return fmt.Errorf("invalid JSON: %w", err)
			}
			req.OwnerID = *ownerID

			inv, err := svc.CreateInvoice(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("creating invoice: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created invoice %s (id %d), total %s\n",
				inv.InvoiceNumber, inv.ID, inv.Total.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the invoice request")
	return cmd
}

func newDeleteCmd(svc app.ApplicationService, ownerID *int) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 1 {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}
			result, err := svc.DeleteInvoice(cmd.Context(), *ownerID, id)
			if err != nil {
				return fmt.Errorf("deleting invoice %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted invoice %d. %d invoice(s) remain.\n",
				id, result.Summary.Count)
			return nil
		},
	}
}

func newExportCmd(svc app.ApplicationService, ownerID *int) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export an invoice as a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 1 {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}
			result, err := svc.ExportInvoice(cmd.Context(), *ownerID, id)
			if err != nil {
				return fmt.Errorf("exporting invoice %d: %w", id, err)
			}
			path := out
			if path == "" {
				path = result.Filename
			}
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(result.Data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (defaults to the export filename)")
	return cmd
}

func newNextNumberCmd(svc app.ApplicationService, ownerID *int) *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Show the next invoice number in the sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := svc.NextInvoiceNumber(cmd.Context(), *ownerID)
			if err != nil {
				return fmt.Errorf("computing next number: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printInvoiceList(cmd *cobra.Command, result *app.InvoiceListResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "  %-10s %-26s %-12s %12s  %s\n", "NUMBER", "CLIENT", "DATE", "TOTAL", "STATUS")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, inv := range result.Invoices {
		fmt.Fprintf(w, "  %-10s %-26s %-12s %12s  %s\n",
			inv.InvoiceNumber,
			truncate(inv.ClientName, 26),
			inv.InvoiceDate.Format("2006-01-02"),
			inv.Total.StringFixed(2),
			inv.Status.DisplayText())
	}
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "  %d invoice(s), %s total — %d overdue, %d due soon\n",
		result.Summary.Count,
		result.Summary.TotalAmount.StringFixed(2),
		result.Summary.OverdueCount,
		result.Summary.DueSoonCount)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
