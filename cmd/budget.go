package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/budget"
	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/model"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage per-category budgets",
	Args:  cobra.NoArgs,
	RunE:  runBudgetList,
}

var budgetSetCmd = &cobra.Command{
	Use:     "set <category> <limit>",
	Short:   "Set or replace the budget for a category",
	Example: "  scold budget set Food 300",
	Args:    cobra.ExactArgs(2),
	RunE:    runBudgetSet,
}

var budgetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show budgets with spend and what is left",
	Args:    cobra.NoArgs,
	RunE:    runBudgetList,
}

var budgetRmCmd = &cobra.Command{
	Use:     "rm <category>",
	Aliases: []string{"delete"},
	Short:   "Remove the budget for a category",
	Args:    cobra.ExactArgs(1),
	RunE:    runBudgetRm,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetListCmd, budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	limit, err := model.ParseMoney(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	b := model.Budget{Category: strings.TrimSpace(args[0]), Limit: limit}
	alerts, err := s.tracker.SetBudget(context.Background(), b)
	if err != nil {
		return fmt.Errorf("setting budget: %w", err)
	}
	fmt.Printf("  Budget for %s set to %s\n", b.Category, cli.FormatMoney(b.Limit, s.currency()))
	printAlertSummary(alerts)
	return nil
}

func runBudgetRm(_ *cobra.Command, args []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	alerts, err := s.tracker.DeleteBudget(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("  Budget for %s removed\n", args[0])
	printAlertSummary(alerts)
	return nil
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	usage, err := budget.Usage(context.Background(), s.store)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("\n  No budgets set.")
		fmt.Println("  Set one with `scold budget set Food 300`.")
		return nil
	}

	cur := s.currency()
	rows := make([][]string, 0, len(usage))
	labelW := 0
	for _, u := range usage {
		rows = append(rows, []string{
			u.Category,
			cli.FormatMoney(u.Limit, cur),
			cli.FormatMoney(u.Spent, cur),
			cli.FormatMoney(u.Remaining, cur),
			cli.FormatPercent(u.UsedRatio),
		})
		labelW = max(labelW, len([]rune(u.Category)))
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Limit", "Spent", "Remaining", "Used"},
		Rows:    rows,
	}))
	fmt.Println()
	for _, u := range usage {
		fmt.Printf("  %-*s %s\n", labelW, u.Category, cli.RenderUsageBar(u.UsedRatio, 30))
	}
	return nil
}
