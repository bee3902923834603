package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/state"
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products", "prod"},
	Short:   "Manage products",
}

var productFlags struct {
	name        string
	description string
	price       float64
	category    string
	stock       int
	totalSold   int
	search      string
	page        int
}

// productRows is the table layout of a product list.
type productRows []model.Product

func (r productRows) Header() []string {
	return []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK", "SOLD"}
}

func (r productRows) Rows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, p := range r {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.TotalSold),
		})
	}
	return rows
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List products, sorted by name. --search matches name or description
case-insensitively, --category matches exactly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("search") {
			store.Dispatch(state.SetFilter[state.ProductFilters]{Field: "search", Value: productFlags.search})
		}
		if f.Changed("category") {
			store.Dispatch(state.SetFilter[state.ProductFilters]{Field: "category", Value: productFlags.category})
		}

		filters := state.SelectProductFilters(store.State())
		if err := store.Run(cmd.Context(), state.FetchProducts(filters.Params())); err != nil {
			return failure("list products", err)
		}

		items := state.SortByName(state.AllProducts(store.State()), state.ProductName)
		page, pages := state.Page(items, productFlags.page, cfg.PageSize)
		printPage(cmd, productRows(page), min(max(productFlags.page, 1), pages), pages, len(items))
		return nil
	},
}

var productGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProduct(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(p))
		return nil
	},
}

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := model.Product{
			Name:        productFlags.name,
			Description: productFlags.description,
			Price:       productFlags.price,
			Category:    productFlags.category,
			Stock:       productFlags.stock,
		}
		draft.Stamp(now())
		if err := model.ValidateProduct(&draft); err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] Would create product %q in %s\n", draft.Name, draft.Category)
			return nil
		}

		if err := store.Run(cmd.Context(), state.AddProduct(draft)); err != nil {
			return failure("create product", err)
		}
		items := state.AllProducts(store.State())
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(items[len(items)-1]))
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a product",
	Long:  `Edit a product. Only the fields given as flags are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := loadProduct(cmd, args[0])
		if err != nil {
			return err
		}

		edited := *current
		f := cmd.Flags()
		if f.Changed("name") {
			edited.Name = productFlags.name
		}
		if f.Changed("description") {
			edited.Description = productFlags.description
		}
		if f.Changed("price") {
			edited.Price = productFlags.price
		}
		if f.Changed("category") {
			edited.Category = productFlags.category
		}
		if f.Changed("stock") {
			edited.Stock = productFlags.stock
		}
		if f.Changed("total-sold") {
			edited.TotalSold = productFlags.totalSold
		}
		edited.Touch(now())
		if err := model.ValidateProduct(&edited); err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] Would update product %s\n", edited.ID)
			return nil
		}

		if err := store.Run(cmd.Context(), state.UpdateCurrentProduct(edited)); err != nil {
			return failure("update product", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(*state.CurrentProduct(store.State())))
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] Would delete product %s\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Delete product %s?", id)) {
			return nil
		}
		if err := store.Run(cmd.Context(), state.DeleteProduct(id)); err != nil {
			return failure("delete product", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Product %s deleted.\n", id)
		return nil
	},
}

var productStatsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Show sales and stock statistics for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProduct(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(model.StatsForProduct(*p)))
		return nil
	},
}

func loadProduct(cmd *cobra.Command, id string) (*model.Product, error) {
	if err := store.Run(cmd.Context(), state.FetchProductByID(id)); err != nil {
		return nil, failure("get product", err)
	}
	return state.CurrentProduct(store.State()), nil
}

func init() {
	productListCmd.Flags().StringVar(&productFlags.search, "search", "", "filter by name or description (substring)")
	productListCmd.Flags().StringVar(&productFlags.category, "category", "", "filter by category")
	productListCmd.Flags().IntVar(&productFlags.page, "page", 1, "page number")

	for _, c := range []*cobra.Command{productCreateCmd, productUpdateCmd} {
		c.Flags().StringVar(&productFlags.name, "name", "", "product name")
		c.Flags().StringVar(&productFlags.description, "description", "", "product description")
		c.Flags().Float64Var(&productFlags.price, "price", 0, "unit price")
		c.Flags().StringVar(&productFlags.category, "category", "", "category: electronics, clothing, books, home")
		c.Flags().IntVar(&productFlags.stock, "stock", 0, "units in stock")
	}
	productUpdateCmd.Flags().IntVar(&productFlags.totalSold, "total-sold", 0, "units sold to date")
	for _, name := range []string{"name", "price", "category", "stock"} {
		_ = productCreateCmd.MarkFlagRequired(name)
	}

	productCmd.AddCommand(productListCmd, productGetCmd, productCreateCmd,
		productUpdateCmd, productDeleteCmd, productStatsCmd)
	rootCmd.AddCommand(productCmd)
}
