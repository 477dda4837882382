package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/alert"
	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/model"
)

var (
	flagAmount string
	flagDate   string
	flagDesc   string
	flagAddCat string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: "Record an expense and check budgets. Without --amount and --category " +
		"an interactive form asks for the details.",
	Example: "  scold add --amount 12.50 --category Food --desc lunch",
	Args:    cobra.NoArgs,
	RunE:    runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount spent, e.g. 12.50")
	addCmd.Flags().StringVarP(&flagAddCat, "category", "c", "", "Category")
	addCmd.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&flagDesc, "desc", "d", "", "Description")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	if flagAmount == "" || flagAddCat == "" {
		if err := expenseForm(s.categories.Names(), &flagAmount, &flagAddCat, &flagDate, &flagDesc).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	e, err := expenseFromFlags(flagAmount, flagAddCat, flagDate, flagDesc)
	if err != nil {
		return err
	}

	id, alerts, err := s.tracker.AddExpense(context.Background(), e)
	if err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}
	fmt.Printf("  Added #%d: %s on %s (%s)\n", id, cli.FormatMoney(e.Amount, s.currency()), e.Category, e.Date)
	printAlertSummary(alerts)
	return nil
}

func expenseFromFlags(amount, category, date, desc string) (model.Expense, error) {
	m, err := model.ParseMoney(amount)
	if err != nil {
		return model.Expense{}, err
	}
	d := model.Today()
	if date != "" {
		if d, err = model.ParseDate(date); err != nil {
			return model.Expense{}, err
		}
	}
	return model.Expense{
		Date:        d,
		Amount:      m,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(desc),
	}, nil
}

// expenseForm asks for the fields of an expense, prefilled with whatever
// the pointers already hold.
func expenseForm(categories []string, amount, category, date, desc *string) *huh.Form {
	if *date == "" {
		*date = model.Today().String()
	}
	if *category == "" && len(categories) > 0 {
		*category = categories[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("12.50").
				Value(amount).
				Validate(func(s string) error {
					_, err := model.ParseMoney(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(category),
			huh.NewInput().
				Title("Date").
				Value(date).
				Validate(func(s string) error {
					_, err := model.ParseDate(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Value(desc),
		),
	)
}

// printAlertSummary tells the user how many alerts a write raised. The
// alerts themselves went out through the notification channels.
func printAlertSummary(alerts []alert.Alert) {
	if len(alerts) == 0 {
		return
	}
	names := make([]string, len(alerts))
	for i, a := range alerts {
		names[i] = a.Category + " (" + string(a.Tier) + ")"
	}
	fmt.Println(cli.TierStyle(string(alerts[0].Tier)).Render(
		fmt.Sprintf("  %d budget alert(s): %s", len(alerts), strings.Join(names, ", "))))
}
