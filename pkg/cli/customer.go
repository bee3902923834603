package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/state"
)

var customerCmd = &cobra.Command{
	Use:     "customer",
	Aliases: []string{"customers", "cust"},
	Short:   "Manage customers",
}

var customerFlags struct {
	name   string
	email  string
	phone  string
	gender string
	page   int
}

// customerRows is the table layout of a customer list.
type customerRows []model.Customer

func (r customerRows) Header() []string {
	return []string{"ID", "NAME", "EMAIL", "PHONE", "GENDER", "UPDATED"}
}

func (r customerRows) Rows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, c := range r {
		rows = append(rows, []string{c.ID, c.Name, c.Email, dash(c.Phone), dash(c.Gender), c.UpdatedAt})
	}
	return rows
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Long: `List customers, sorted by name. --name matches a substring
case-insensitively, --gender matches exactly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.Changed("name") {
			store.Dispatch(state.SetFilter[state.CustomerFilters]{Field: "name", Value: customerFlags.name})
		}
		if f.Changed("gender") {
			store.Dispatch(state.SetFilter[state.CustomerFilters]{Field: "gender", Value: customerFlags.gender})
		}

		filters := state.SelectCustomerFilters(store.State())
		if err := store.Run(cmd.Context(), state.FetchCustomers(filters.Params())); err != nil {
			return failure("list customers", err)
		}

		items := state.SortByName(state.AllCustomers(store.State()), state.CustomerName)
		page, pages := state.Page(items, customerFlags.page, cfg.PageSize)
		printPage(cmd, customerRows(page), min(max(customerFlags.page, 1), pages), pages, len(items))
		return nil
	},
}

var customerGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCustomer(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(c))
		return nil
	},
}

var customerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := model.Customer{
			Name:   customerFlags.name,
			Email:  customerFlags.email,
			Phone:  customerFlags.phone,
			Gender: customerFlags.gender,
		}
		draft.Stamp(now())
		if err := model.ValidateCustomer(&draft); err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] Would create customer %q <%s>\n", draft.Name, draft.Email)
			return nil
		}

		if err := store.Run(cmd.Context(), state.AddCustomer(draft)); err != nil {
			return failure("create customer", err)
		}
		items := state.AllCustomers(store.State())
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(items[len(items)-1]))
		return nil
	},
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a customer",
	Long:  `Edit a customer. Only the fields given as flags are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := loadCustomer(cmd, args[0])
		if err != nil {
			return err
		}

		edited := *current
		f := cmd.Flags()
		if f.Changed("name") {
			edited.Name = customerFlags.name
		}
		if f.Changed("email") {
			edited.Email = customerFlags.email
		}
		if f.Changed("phone") {
			edited.Phone = customerFlags.phone
		}
		if f.Changed("gender") {
			edited.Gender = customerFlags.gender
		}
		edited.Touch(now())
		if err := model.ValidateCustomer(&edited); err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] Would update customer %s\n", edited.ID)
			return nil
		}

		if err := store.Run(cmd.Context(), state.UpdateCurrentCustomer(edited)); err != nil {
			return failure("update customer", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(*state.CurrentCustomer(store.State())))
		return nil
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] Would delete customer %s\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Delete customer %s?", id)) {
			return nil
		}
		if err := store.Run(cmd.Context(), state.DeleteCustomer(id)); err != nil {
			return failure("delete customer", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Customer %s deleted.\n", id)
		return nil
	},
}

var customerStatsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Show account statistics for a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCustomer(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(model.StatsForCustomer(*c, now())))
		return nil
	},
}

// loadCustomer opens a customer in the store and returns it.
func loadCustomer(cmd *cobra.Command, id string) (*model.Customer, error) {
	if err := store.Run(cmd.Context(), state.FetchCustomerByID(id)); err != nil {
		return nil, failure("get customer", err)
	}
	return state.CurrentCustomer(store.State()), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	customerListCmd.Flags().StringVar(&customerFlags.name, "name", "", "filter by name (substring)")
	customerListCmd.Flags().StringVar(&customerFlags.gender, "gender", "", "filter by gender")
	customerListCmd.Flags().IntVar(&customerFlags.page, "page", 1, "page number")

	for _, c := range []*cobra.Command{customerCreateCmd, customerUpdateCmd} {
		c.Flags().StringVar(&customerFlags.name, "name", "", "customer name")
		c.Flags().StringVar(&customerFlags.email, "email", "", "email address")
		c.Flags().StringVar(&customerFlags.phone, "phone", "", "phone number")
		c.Flags().StringVar(&customerFlags.gender, "gender", "", "gender: female, male")
	}
	_ = customerCreateCmd.MarkFlagRequired("name")
	_ = customerCreateCmd.MarkFlagRequired("email")

	customerCmd.AddCommand(customerListCmd, customerGetCmd, customerCreateCmd,
		customerUpdateCmd, customerDeleteCmd, customerStatsCmd)
	rootCmd.AddCommand(customerCmd)
}
