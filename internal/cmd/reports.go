package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/api"
	"github.com/fadna/oms/internal/models"
	"github.com/fadna/oms/internal/report"
)

var (
	reportStart   string
	reportEnd     string
	reportPayment string
	reportAgent   string
	reportOut     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export an orders report as CSV",
	Long: `Export orders in a date range to a CSV file.

Admins export across agents; the backend marks exported COD orders as
dispatched and logs the download. Agents get a read-only report of their
own orders with no side effects.`,
	RunE: runReport,
}

var reportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past report downloads (admin)",
	RunE:  runReportHistory,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportHistoryCmd)

	reportCmd.Flags().StringVar(&reportStart, "start", "", "Range start (YYYY-MM-DD, default: first of this month)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "Range end (YYYY-MM-DD, default: end of this month)")
	reportCmd.Flags().StringVar(&reportPayment, "payment", "All", "Payment filter: All, Paid, COD or Export")
	reportCmd.Flags().StringVar(&reportAgent, "agent", "All", "Agent id to scope to, or All (admins only)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output directory (default: current directory)")
}

func reportRange() (time.Time, time.Time, error) {
	start, end := report.MonthRange(time.Now())
	if reportStart != "" {
		t, err := time.ParseInLocation("2006-01-02", reportStart, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("invalid --start date: %w", err)
		}
		start = t
	}
	if reportEnd != "" {
		t, err := time.ParseInLocation("2006-01-02", reportEnd, time.Local)
		if err != nil {
			return start, end, fmt.Errorf("invalid --end date: %w", err)
		}
		end = t.Add(24*time.Hour - time.Second)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("--end is before --start")
	}
	return start, end, nil
}

func validPayment(p string) bool {
	switch p {
	case "All", models.PaymentPaid, models.PaymentCOD, models.PaymentExport:
		return true
	}
	return false
}

func runReport(cmd *cobra.Command, args []string) error {
	_, client, sess, err := loadSession()
	if err != nil {
		return err
	}
	caps := sess.Capabilities()
	if !caps.CanReport {
		return fmt.Errorf("your role cannot export reports")
	}
	if !validPayment(reportPayment) {
		return fmt.Errorf("payment filter must be All, %s, %s or %s",
			models.PaymentPaid, models.PaymentCOD, models.PaymentExport)
	}

	start, end, err := reportRange()
	if err != nil {
		return err
	}

	var orders []models.Order
	agentLabel := "All"
	if caps.CanExportAll {
		if reportAgent != "All" && reportAgent != "" {
			agents, err := client.Agents(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch agents: %w", err)
			}
			for _, a := range agents {
				if a.ID == reportAgent {
					agentLabel = a.Name
					break
				}
			}
			if agentLabel == "All" {
				return fmt.Errorf("unknown agent id %q", reportAgent)
			}
		}
		orders, err = client.ExportOrders(cmd.Context(), api.ExportRequest{
			StartDate:     start,
			EndDate:       end,
			PaymentStatus: reportPayment,
			AgentID:       reportAgent,
		})
	} else {
		if reportAgent != "All" && reportAgent != "" {
			return fmt.Errorf("agents can only export their own orders")
		}
		agentLabel = sess.User.Name
		orders, err = client.MyReport(cmd.Context(), start, end, reportPayment)
	}
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	if len(orders) == 0 {
		return fmt.Errorf("no orders found for the selected range")
	}

	data, err := report.OrdersCSV(orders, caps.CanExportAll)
	if err != nil {
		return fmt.Errorf("failed to build CSV: %w", err)
	}

	path := filepath.Join(reportOut, report.Filename(agentLabel, start, end))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("📊 Exported %d orders to %s\n", len(orders), path)
	return nil
}

func runReportHistory(cmd *cobra.Command, args []string) error {
	_, client, sess, err := loadSession()
	if err != nil {
		return err
	}
	if !sess.Capabilities().CanSeeHistory {
		return fmt.Errorf("your role cannot view the export history")
	}

	logs, err := client.ExportHistory(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch export history: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println("No reports have been exported yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "When\tBy\tRange\tPayment\tOrders")
	for _, l := range logs {
		who := "Unknown"
		if l.GeneratedBy != nil {
			who = l.GeneratedBy.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s - %s\t%s\t%d\n",
			l.GeneratedAt.Local().Format("02/01/2006 15:04:05"),
			who,
			l.StartDate.Local().Format("02/01/2006"),
			l.EndDate.Local().Format("02/01/2006"),
			l.PaymentStatus,
			l.OrderCount,
		)
	}
	return w.Flush()
}
