package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/models"
	"github.com/fadna/oms/internal/report"
)

var (
	customersSearch string
	customersOut    string
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Browse the customer directory",
	RunE:  runCustomersList,
}

func init() {
	rootCmd.AddCommand(customersCmd)

	customersCmd.Flags().StringVar(&customersSearch, "search", "", "Substring filter over name and phones")

	customersCmd.AddCommand(customersExportCmd)
	customersCmd.AddCommand(customersDeleteCmd)
	customersCmd.AddCommand(customersDeleteAllCmd)

	customersExportCmd.Flags().StringVar(&customersOut, "out", "customers.csv", "Output file")
}

func filterCustomers(customers []models.Customer, term string) []models.Customer {
	if term == "" {
		return customers
	}
	needle := strings.ToLower(term)
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(c.Phone, term) ||
			(c.Phone2 != "" && strings.Contains(c.Phone2, term)) {
			out = append(out, c)
		}
	}
	return out
}

func runCustomersList(cmd *cobra.Command, args []string) error {
	_, client, _, err := loadSession()
	if err != nil {
		return err
	}

	customers, err := client.Customers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch customers: %w", err)
	}
	filtered := filterCustomers(customers, customersSearch)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tContact 1\tContact 2\tAddress\tCity\tCountry\tEmail\tJoined")
	for _, c := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Phone, dash(c.Phone2), c.Address, dash(c.City),
			dash(c.Country), dash(c.Email), c.CreatedAt.Local().Format("02/01/2006"))
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var customersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full directory to CSV (super admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanDeleteCustomers {
			return fmt.Errorf("only %s can export the directory", models.RoleSuperAdmin)
		}
		customers, err := client.Customers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch customers: %w", err)
		}
		data, err := report.CustomersCSV(customers)
		if err != nil {
			return err
		}
		if err := os.WriteFile(customersOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", customersOut, err)
		}
		fmt.Printf("💾 Exported %d customers to %s\n", len(customers), customersOut)
		return nil
	},
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <customer-id>",
	Short: "Delete one customer (super admin, password re-auth)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanDeleteCustomers {
			return fmt.Errorf("only %s can delete customers", models.RoleSuperAdmin)
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if !confirm("Are you ABSOLUTELY sure you want to delete this customer?") {
			return nil
		}
		if err := client.DeleteCustomer(cmd.Context(), args[0], password); err != nil {
			return fmt.Errorf("failed to delete customer (check your password): %w", err)
		}
		fmt.Println("🗑️  Customer deleted")
		return nil
	},
}

var customersDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete ALL customers (super admin, password re-auth)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanDeleteCustomers {
			return fmt.Errorf("only %s can delete all customers", models.RoleSuperAdmin)
		}
		fmt.Println("⚠️  WARNING: this deletes ALL customers in the system.")
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if !confirm("Are you ABSOLUTELY sure? This action is IRREVERSIBLE.") {
			return nil
		}
		if !confirm("Final confirmation: delete all customers?") {
			return nil
		}
		result, err := client.BulkDeleteCustomers(cmd.Context(), password)
		if err != nil {
			return fmt.Errorf("bulk deletion failed (check your password): %w", err)
		}
		fmt.Println("🗑️ ", result.Message)
		return nil
	},
}
