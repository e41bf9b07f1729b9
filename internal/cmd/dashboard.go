package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's summary counters and the agent/product pivot",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	_, client, _, err := loadSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// The two payloads are independent; a matrix failure should not hide
	// the counters.
	stats, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	fmt.Printf("📦 Total Orders:     %d\n", stats.TotalOrders)
	fmt.Printf("💰 Today's Revenue:  Rs. %.2f\n", stats.TodaysRevenue)
	fmt.Printf("💵 Total Revenue:    Rs. %.2f\n", stats.TotalRevenue)
	fmt.Printf("👥 Total Customers:  %d\n", stats.TotalCustomers)

	matrix, err := client.Matrix(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch matrix: %w", err)
	}
	if len(matrix.Products) == 0 {
		fmt.Println("\nNo orders placed today.")
		return nil
	}

	totals := dashboard.TotalsFor(matrix)

	fmt.Printf("\nAgent-wise Product Order Count (Today) - updated %s\n",
		time.Now().Format("02/01/2006 15:04:05"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "Agent")
	for _, p := range matrix.Products {
		fmt.Fprintf(w, "\t%s", p)
	}
	fmt.Fprintln(w, "\tTotal")
	for _, agent := range matrix.Agents {
		fmt.Fprint(w, agent)
		for _, p := range matrix.Products {
			fmt.Fprintf(w, "\t%d", matrix.Data[agent][p])
		}
		fmt.Fprintf(w, "\t%d\n", totals.ByAgent[agent])
	}
	fmt.Fprint(w, "Grand Total")
	for _, p := range matrix.Products {
		fmt.Fprintf(w, "\t%d", totals.ByProduct[p])
	}
	fmt.Fprintf(w, "\t%d\n", totals.Grand)
	return w.Flush()
}
