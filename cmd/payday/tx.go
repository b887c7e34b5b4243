package main

import (
	"fmt"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/ledger"
	"github.com/Veraticus/payday/internal/model"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction", "transactions"},
		Short:   "Add, list, edit and delete transactions",
	}
	cmd.AddCommand(txAddCmd(), txListCmd(), txEditCmd(), txDeleteCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		amount, description, typeName, categoryName string
		recurringDay                                int
		start, end                                  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction dated today",
		Example: `  payday tx add --amount 45.50 --category food --description "Groceries"
  payday tx add --amount 2000 --category salary --recurring-day 1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := model.TransactionDraft{Description: description}

			var err error
			if draft.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if draft.Category, err = model.ParseCategory(categoryName); err != nil {
				return err
			}
			draft.Type = draft.Category.DefaultType()
			if typeName != "" {
				if draft.Type, err = model.ParseTransactionType(typeName); err != nil {
					return err
				}
			}
			if recurringDay != 0 {
				draft.IsRecurring = true
				draft.RecurringDay = recurringDay
				if draft.RecurringStartDate, err = parseOptionalDate(start); err != nil {
					return err
				}
				if draft.RecurringEndDate, err = parseOptionalDate(end); err != nil {
					return err
				}
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.ledger.AddTransaction(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.RenderTransactions([]model.Transaction{tx}))
			if tx.Type == model.TypeExpense {
				a.ledger.CheckMonthlyBudget(cmd.Context())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, never negative")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Income or Expense (default: from category)")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "category")
	cmd.Flags().IntVar(&recurringDay, "recurring-day", 0, "repeat monthly on this day (1-31)")
	cmd.Flags().StringVar(&start, "recurring-start", "", "recurrence start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "recurring-end", "", "recurrence end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func txListCmd() *cobra.Command {
	var from, to, categoryName, typeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := buildCriteria(from, to, categoryName, typeName)
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(a.out, cli.RenderTransactions(ledger.Filter(a.ledger.Transactions(), criteria)))
			return nil
		},
	}

	addFilterFlags(cmd, &from, &to, &categoryName, &typeName)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, from, to, category, typeName *string) {
	cmd.Flags().StringVar(from, "from", "", "first date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(to, "to", "", "last date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(typeName, "type", "t", "", "only Income or Expense")
}

func buildCriteria(from, to, categoryName, typeName string) (ledger.Criteria, error) {
	var c ledger.Criteria
	var err error
	if c.StartDate, err = parseOptionalDate(from); err != nil {
		return c, err
	}
	if c.EndDate, err = parseOptionalDate(to); err != nil {
		return c, err
	}
	if categoryName != "" {
		if c.Category, err = model.ParseCategory(categoryName); err != nil {
			return c, err
		}
	}
	if typeName != "" {
		if c.Type, err = model.ParseTransactionType(typeName); err != nil {
			return c, err
		}
	}
	return c, nil
}

func txEditCmd() *cobra.Command {
	var amount, description, typeName, categoryName, date string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			tx, ok := a.ledger.Get(id)
			if !ok {
				return fmt.Errorf("transaction %d not found", id)
			}

			flags := cmd.Flags()
			if flags.Changed("amount") {
				if tx.Amount, err = parseAmount(amount); err != nil {
					return err
				}
			}
			if flags.Changed("description") {
				tx.Description = description
			}
			if flags.Changed("category") {
				if tx.Category, err = model.ParseCategory(categoryName); err != nil {
					return err
				}
			}
			if flags.Changed("type") {
				if tx.Type, err = model.ParseTransactionType(typeName); err != nil {
					return err
				}
			}
			if flags.Changed("date") {
				if tx.Date, err = model.ParseDate(date); err != nil {
					return err
				}
			}

			updated, err := a.ledger.EditTransaction(cmd.Context(), tx)
			if err != nil {
				return err
			}
			if updated {
				fmt.Fprintln(a.out, cli.RenderTransactions([]model.Transaction{tx}))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "new type")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "new category")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and its recurring template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := a.ledger.DeleteTransaction(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("Nothing deleted"))
			}
			return nil
		},
	}
}
