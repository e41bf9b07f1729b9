package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/models"
	"github.com/fadna/oms/internal/order"
	"github.com/fadna/oms/internal/poll"
)

var (
	ordersSearch string
	ordersWatch  bool
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Browse and manage the order ledger",
	Long: `List orders with client-side search, transition dispatch statuses,
import CSV batches, send edit requests and (super admins) delete orders.`,
	RunE: runOrdersList,
}

func init() {
	rootCmd.AddCommand(ordersCmd)

	ordersCmd.Flags().StringVar(&ordersSearch, "search", "", "Substring filter over customer, id, remark and payment")
	ordersCmd.Flags().BoolVar(&ordersWatch, "watch", false, "Keep running and poll for pending edit requests")

	ordersCmd.AddCommand(ordersStatusCmd)
	ordersCmd.AddCommand(ordersDeleteCmd)
	ordersCmd.AddCommand(ordersDeleteAllCmd)
	ordersCmd.AddCommand(ordersImportCmd)
	ordersCmd.AddCommand(ordersRequestEditCmd)
	ordersCmd.AddCommand(ordersPendingCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	cfg, client, sess, err := loadSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	orders, err := client.Orders(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}
	filtered := order.Filter(orders, ordersSearch)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCustomer\tItems\tTotal\tPayment\tStatus\tAgent\tDate")
	for i := range filtered {
		o := &filtered[i]
		customer := "Unknown"
		if o.Customer != nil {
			customer = fmt.Sprintf("%s %s", o.Customer.Name, o.Customer.Phone)
		}
		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%dx %s", it.Quantity, it.ProductName))
		}
		agent := ""
		if o.Agent != nil {
			agent = o.Agent.Name
		}
		flags := ""
		if o.IsDownloaded {
			flags = " ✓"
		}
		if o.EditRequest != nil && o.EditRequest.Pending && sess.User.OwnsOrder(o) {
			flags += " ✏️"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\tRs. %.2f\t%s\t%s\t%s\t%s\n",
			o.ShortID(), flags, customer, strings.Join(items, ", "),
			o.FinalAmount, o.PaymentStatus, o.Status, agent,
			o.CreatedAt.Local().Format("02/01/2006 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Surface pending edit-request messages for orders this user owns.
	for i := range filtered {
		o := &filtered[i]
		if o.EditRequest != nil && o.EditRequest.Pending && sess.User.OwnsOrder(o) {
			from := "Agent"
			if o.EditRequest.From != nil {
				from = o.EditRequest.From.Name
			}
			fmt.Printf("✏️  %s: edit requested by %s: %s\n", o.ShortID(), from, o.EditRequest.Message)
		}
	}

	if !ordersWatch {
		return nil
	}
	return watchPendingEdits(ctx, cfg.Poll.Clock, cfg.Poll.PendingEdits, client)
}

// watchPendingEdits runs the two background loops the dashboard shell had:
// a clock tick and the pending-edit badge poll. Both stop when the
// context is cancelled (Ctrl-C).
func watchPendingEdits(parent context.Context, clockEvery, pollEvery time.Duration, client pendingCounter) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := poll.NewRunner(clockEvery, func(context.Context) {
		fmt.Printf("\r🕐 %s ", time.Now().Format("Mon Jan 2 15:04:05"))
	})

	var lastCount = -1
	pending := poll.NewRunner(pollEvery, func(ctx context.Context) {
		count, err := client.PendingEditsCount(ctx)
		if err != nil {
			return // transient; next tick retries
		}
		if count != lastCount {
			lastCount = count
			if count > 0 {
				fmt.Printf("\n🚨 URGENT: you have %d pending edit request(s). Check orders.\n", count)
			} else {
				fmt.Println("\nNo pending edit requests.")
			}
		}
	})

	clock.Start(ctx)
	pending.Start(ctx)
	<-ctx.Done()
	clock.Wait()
	pending.Wait()
	fmt.Println()
	return nil
}

type pendingCounter interface {
	PendingEditsCount(ctx context.Context) (int, error)
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <Pending|Dispatched|Returned>",
	Short: "Transition an order's dispatch status (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanDispatch {
			return fmt.Errorf("%s accounts cannot change dispatch status", sess.User.Role)
		}
		if !order.ValidStatus(args[1]) {
			return fmt.Errorf("invalid status %q", args[1])
		}
		if err := client.UpdateOrderStatus(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		fmt.Printf("✅ Order %s -> %s\n", args[0], args[1])
		return nil
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete <order-id>",
	Short: "Delete one order (super admin, password re-auth)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanDeleteOrders {
			return fmt.Errorf("only %s can delete orders", models.RoleSuperAdmin)
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if !confirm("Are you ABSOLUTELY sure you want to delete this order?") {
			return nil
		}
		if err := client.DeleteOrder(cmd.Context(), args[0], password); err != nil {
			return fmt.Errorf("failed to delete order (check your password): %w", err)
		}
		fmt.Println("🗑️  Order deleted")
		return nil
	},
}

var ordersDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete ALL orders (super admin, password re-auth)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanDeleteOrders {
			return fmt.Errorf("only %s can delete all orders", models.RoleSuperAdmin)
		}
		fmt.Println("⚠️  WARNING: this deletes ALL orders in the system.")
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if !confirm("Are you ABSOLUTELY sure? This action is IRREVERSIBLE.") {
			return nil
		}
		if !confirm("Final confirmation: delete all orders?") {
			return nil
		}
		result, err := client.BulkDeleteOrders(cmd.Context(), password)
		if err != nil {
			return fmt.Errorf("bulk deletion failed (check your password): %w", err)
		}
		fmt.Println("🗑️ ", result.Message)
		return nil
	},
}

var ordersImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk-import orders from a CSV file (admin)",
	Long: `Posts the file to the backend unparsed; the backend validates every
row and reports success and error counts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, sess, err := loadSession()
		if err != nil {
			return err
		}
		if !sess.Capabilities().CanImport {
			return fmt.Errorf("%s accounts cannot import orders", sess.User.Role)
		}
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer file.Close()

		result, err := client.ImportOrders(cmd.Context(), args[0], file)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("✅ Import finished: %d orders imported, %d errors\n",
			result.SuccessCount, result.ErrorCount)
		for _, e := range result.Errors {
			fmt.Printf("   ⚠️  %s\n", e)
		}
		return nil
	},
}

var ordersRequestEditCmd = &cobra.Command{
	Use:   "request-edit <order-id> <message>",
	Short: "Ask the owning agent to revise an order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadSession()
		if err != nil {
			return err
		}
		message := strings.Join(args[1:], " ")
		if err := client.RequestEdit(cmd.Context(), args[0], message); err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		fmt.Println("✉️  Edit request sent")
		return nil
	},
}

var ordersPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show how many of your orders have pending edit requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadSession()
		if err != nil {
			return err
		}
		count, err := client.PendingEditsCount(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to check pending edits: %w", err)
		}
		if count == 0 {
			fmt.Println("No pending edit requests.")
		} else {
			fmt.Printf("🚨 %d pending edit request(s)\n", count)
		}
		return nil
	},
}
