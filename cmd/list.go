package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/model"
	"github.com/theirongolddev/scold/internal/report"
)

var (
	flagSince    string
	flagUntil    string
	flagCategory string
	flagLimit    int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func listFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagSince, "since", "", "Only expenses on or after YYYY-MM-DD")
	c.Flags().StringVar(&flagUntil, "until", "", "Only expenses on or before YYYY-MM-DD")
	c.Flags().StringVarP(&flagCategory, "category", "c", "", "Only this category")
	c.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Show at most n expenses (0 = all)")
}

// dateRange parses --since/--until. Empty flags leave that side open.
func dateRange() (model.Date, model.Date, error) {
	var since, until model.Date
	var err error
	if flagSince != "" {
		if since, err = model.ParseDate(flagSince); err != nil {
			return since, until, err
		}
	}
	if flagUntil != "" {
		if until, err = model.ParseDate(flagUntil); err != nil {
			return since, until, err
		}
	}
	return since, until, nil
}

func runList(_ *cobra.Command, _ []string) error {
	since, until, err := dateRange()
	if err != nil {
		return err
	}

	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	expenses, err := s.store.ListExpenses(context.Background())
	if err != nil {
		return err
	}
	expenses = report.Filter(expenses, since, until)
	if flagCategory != "" {
		n := 0
		for _, e := range expenses {
			if strings.EqualFold(e.Category, flagCategory) {
				expenses[n] = e
				n++
			}
		}
		expenses = expenses[:n]
	}
	if len(expenses) == 0 {
		fmt.Println("\n  No expenses recorded.")
		fmt.Println("  Add one with `scold add --amount 12.50 --category Food`.")
		return nil
	}

	total := report.Summarize(expenses).TotalSpent
	shown := expenses
	if flagLimit > 0 && len(shown) > flagLimit {
		shown = shown[:flagLimit]
	}

	rows := make([][]string, 0, len(shown)+2)
	for _, e := range shown {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			cli.FormatMoney(e.Amount, s.currency()),
			e.Category,
			cli.Truncate(e.Description, 40),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", cli.FormatMoney(total, s.currency()), fmt.Sprintf("%d expenses", len(expenses)), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Expenses",
		Headers: []string{"ID", "Date", "Amount", "Category", "Description"},
		Rows:    rows,
		Left:    []int{1, 3, 4},
	}))
	if len(shown) < len(expenses) {
		fmt.Println(cli.Muted(fmt.Sprintf("  showing %d of %d", len(shown), len(expenses))))
	}
	return nil
}
