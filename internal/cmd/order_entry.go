package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/models"
	"github.com/fadna/oms/internal/order"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Compose a new order or edit an existing one",
}

var orderNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an order interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComposer(cmd, "")
	},
}

var orderEditCmd = &cobra.Command{
	Use:   "edit <order-id>",
	Short: "Edit an existing order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComposer(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderNewCmd)
	orderCmd.AddCommand(orderEditCmd)
}

func runComposer(cmd *cobra.Command, editID string) error {
	cfg, client, _, err := loadSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	catalog, err := client.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	composer := order.NewComposer(client, cfg.Delivery, catalog)

	if editID != "" {
		fmt.Printf("📝 Editing order %s\n", editID)
		if err := composer.Hydrate(ctx, editID); err != nil {
			return fmt.Errorf("failed to load order details: %w", err)
		}
		fmt.Printf("Customer: %s (%s)\n", composer.Form.Name, composer.Phone())
	} else {
		phone, err := prompt("Customer phone")
		if err != nil {
			return err
		}
		if err := composer.Lookup(ctx, phone); err != nil {
			return fmt.Errorf("error searching customer: %w", err)
		}
		if composer.IsNewCustomer() {
			fmt.Println("🆕 No customer with that number - creating a new record.")
		} else {
			fmt.Println("✅ Existing customer loaded. You can update details if needed.")
		}
	}

	if err := editCustomerForm(composer); err != nil {
		return err
	}
	if err := editLines(composer, catalog); err != nil {
		return err
	}
	if err := editPricing(composer); err != nil {
		return err
	}

	fmt.Printf("\nSubtotal:  Rs. %.2f\n", composer.Subtotal())
	fmt.Printf("Delivery:  Rs. %.2f\n", composer.DeliveryCharge())
	fmt.Printf("Discount:  Rs. %.2f (%.2f%%)\n", composer.DiscountAmount(), composer.DiscountPercent())
	fmt.Printf("Total:     Rs. %.2f  [%s]\n", composer.Total(), composer.Payment())

	if !confirm("Submit order?") {
		fmt.Println("Cancelled, nothing submitted.")
		return nil
	}
	if err := composer.Submit(ctx); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	if editID != "" {
		fmt.Println("✅ Order updated")
	} else {
		fmt.Println("✅ Order created")
	}
	return nil
}

// editCustomerForm walks the editable customer fields. The primary phone
// is the lookup key and is never editable here.
func editCustomerForm(c *order.Composer) error {
	var err error
	if c.Form.Name, err = promptDefault("Name", c.Form.Name); err != nil {
		return err
	}
	if c.Form.Phone2, err = promptDefault("Contact 2 (optional)", c.Form.Phone2); err != nil {
		return err
	}
	if c.Form.Address, err = promptDefault("Address", c.Form.Address); err != nil {
		return err
	}
	if c.Form.City, err = promptDefault("City", c.Form.City); err != nil {
		return err
	}
	if c.Form.Country, err = promptDefault("Country", c.Form.Country); err != nil {
		return err
	}
	if c.Form.Email, err = promptDefault("Email (optional)", c.Form.Email); err != nil {
		return err
	}
	return nil
}

func editLines(c *order.Composer, catalog []models.Product) error {
	if lines := c.Lines(); len(lines) > 0 {
		fmt.Println("Current items:")
		for i, l := range lines {
			fmt.Printf("  %d. %dx %s @ Rs. %.2f\n", i+1, l.Quantity, l.Name, l.Price)
		}
		if confirm("Replace the item list?") {
			for len(c.Lines()) > 0 {
				c.RemoveLine(0)
			}
		} else {
			return nil
		}
	}

	fmt.Printf("Add items (%d products in catalog). Empty name finishes.\n", len(catalog))
	for {
		name, err := prompt("Product name")
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		qtyStr, err := promptDefault("Quantity", "1")
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			fmt.Println("⚠️  Quantity must be a positive number.")
			continue
		}

		i := len(c.Lines())
		c.AddLine()
		c.SetLineName(i, name)
		c.SetLineQuantity(i, qty)

		line := c.Lines()[i]
		if line.ProductID == "" {
			fmt.Printf("⚠️  %q is not in the catalog - it will submit as Unknown.\n", name)
		} else {
			fmt.Printf("   Rs. %.2f x %d = Rs. %.2f\n", line.Price, qty, line.Price*float64(qty))
		}
	}
}

func editPricing(c *order.Composer) error {
	deliveryStr, err := promptDefault("Delivery charge", fmt.Sprintf("%.2f", c.DeliveryCharge()))
	if err != nil {
		return err
	}
	if delivery, perr := strconv.ParseFloat(deliveryStr, 64); perr == nil && delivery != c.DeliveryCharge() {
		c.SetDeliveryCharge(delivery)
	}

	pctStr, err := promptDefault("Discount %", fmt.Sprintf("%.2f", c.DiscountPercent()))
	if err != nil {
		return err
	}
	if pct, perr := strconv.ParseFloat(pctStr, 64); perr == nil && pct != c.DiscountPercent() {
		c.SetDiscountPercent(pct)
	}

	amtStr, err := promptDefault("Discount amount", fmt.Sprintf("%.2f", c.DiscountAmount()))
	if err != nil {
		return err
	}
	if amt, perr := strconv.ParseFloat(amtStr, 64); perr == nil && amt != c.DiscountAmount() {
		c.SetDiscountAmount(amt)
	}

	payment, err := promptDefault("Payment (COD/Paid/Export)", c.Payment())
	if err != nil {
		return err
	}
	switch payment {
	case models.PaymentCOD, models.PaymentPaid, models.PaymentExport:
		c.SetPayment(payment)
	default:
		fmt.Printf("⚠️  Unknown payment type %q, keeping %s.\n", payment, c.Payment())
	}

	if c.Remark, err = promptDefault("Remark (optional)", c.Remark); err != nil {
		return err
	}
	if c.AdditionalRemark, err = promptDefault("Additional remark (optional)", c.AdditionalRemark); err != nil {
		return err
	}
	return nil
}
