package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/budget"
	"github.com/theirongolddev/scold/internal/cli"
)

var flagDryRun bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every budget and send alerts for overspending",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report alerts without sending notifications")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	report, err := budget.OverspendingReport(ctx, s.store)
	if err != nil {
		return err
	}

	check := s.tracker.Check
	if flagDryRun {
		check = s.tracker.Evaluate
	}
	alerts, err := check(ctx)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		fmt.Println("\n  All budgets are on track.")
		return nil
	}

	cur := s.currency()
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		amount := cli.FormatMoney(a.Amount, cur)
		if d, over := report[a.Category]; over {
			amount = cli.FormatDeviation(d, cur)
		}
		rows = append(rows, []string{a.Category, string(a.Tier), amount, a.Message})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budget alerts",
		Headers: []string{"Category", "Tier", "Amount", "Message"},
		Rows:    rows,
		Left:    []int{1, 3},
	}))
	if flagDryRun {
		fmt.Println(cli.Muted("  dry run: no notifications sent"))
	}
	return nil
}
