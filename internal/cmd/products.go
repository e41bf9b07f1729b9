package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fadna/oms/internal/api"
	"github.com/fadna/oms/internal/models"
	"github.com/fadna/oms/internal/session"
)

var (
	productsSearch string

	productName        string
	productPrice       float64
	productWeight      float64
	productUnit        string
	productDescription string
	productInactive    bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage the product catalog",
	RunE:  runProductsList,
}

func init() {
	rootCmd.AddCommand(productsCmd)

	productsCmd.Flags().StringVar(&productsSearch, "search", "", "Substring filter over product names")

	for _, sub := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		sub.Flags().StringVar(&productName, "name", "", "Product name")
		sub.Flags().Float64Var(&productPrice, "price", 0, "Price in rupees")
		sub.Flags().Float64Var(&productWeight, "weight", 0, "Weight")
		sub.Flags().StringVar(&productUnit, "unit", "g", "Weight unit (g, ml, capsules)")
		sub.Flags().StringVar(&productDescription, "description", "", "Description")
		sub.Flags().BoolVar(&productInactive, "inactive", false, "Mark as unavailable")
		productsCmd.AddCommand(sub)
	}
	productsCmd.AddCommand(productsDeleteCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	_, client, _, err := loadSession()
	if err != nil {
		return err
	}

	products, err := client.Products(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	needle := strings.ToLower(productsSearch)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tPrice\tWeight\tStatus")
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		status := "Available"
		if !p.Active {
			status = "Unavailable"
		}
		fmt.Fprintf(w, "%s\t%s\tRs. %.2f\t%g %s\t%s\n", p.ID, p.Name, p.Price, p.Weight, p.Unit, status)
	}
	return w.Flush()
}

func requireProductManager() (*api.Client, *session.Session, error) {
	_, client, sess, err := loadSession()
	if err != nil {
		return nil, nil, err
	}
	if !sess.Capabilities().CanManageProducts {
		return nil, nil, fmt.Errorf("only %s can manage products", models.RoleSuperAdmin)
	}
	return client, sess, nil
}

func productPayload() api.ProductPayload {
	return api.ProductPayload{
		Name:        productName,
		Price:       productPrice,
		Weight:      productWeight,
		Unit:        productUnit,
		Description: productDescription,
		Active:      !productInactive,
	}
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (super admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireProductManager()
		if err != nil {
			return err
		}
		if productName == "" {
			return fmt.Errorf("--name is required")
		}
		if err := client.CreateProduct(cmd.Context(), productPayload()); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}
		fmt.Printf("✅ Product %q created\n", productName)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product (super admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireProductManager()
		if err != nil {
			return err
		}
		if err := client.UpdateProduct(cmd.Context(), args[0], productPayload()); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}
		fmt.Println("✅ Product updated")
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product (super admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireProductManager()
		if err != nil {
			return err
		}
		if !confirm("Are you sure you want to delete this product?") {
			return nil
		}
		if err := client.DeleteProduct(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		fmt.Println("🗑️  Product deleted")
		return nil
	},
}
