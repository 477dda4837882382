package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/report"
)

var (
	flagChart string
	flagTrend string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Spending by category and by month",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagSince, "since", "", "Only expenses on or after YYYY-MM-DD")
	reportCmd.Flags().StringVar(&flagUntil, "until", "", "Only expenses on or before YYYY-MM-DD")
	reportCmd.Flags().StringVar(&flagChart, "chart", "", "Write a category pie chart PNG to this path")
	reportCmd.Flags().StringVar(&flagTrend, "trend", "", "Write a monthly trend chart PNG to this path")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
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
	if len(expenses) == 0 {
		fmt.Println("\n  Nothing to report.")
		return nil
	}

	cur := s.currency()
	summary := report.Summarize(expenses)
	totals := report.ByCategory(expenses)
	months := report.ByMonth(expenses)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("Spending %s to %s", summary.First, summary.Last)))
	fmt.Printf("  Total %s across %s expenses in %d categories\n\n",
		cli.FormatMoney(summary.TotalSpent, cur),
		cli.FormatNumber(int64(summary.ExpenseCount)),
		summary.Categories)

	rows := make([][]string, 0, len(totals))
	labelW := 0
	for _, ct := range totals {
		rows = append(rows, []string{
			ct.Category,
			cli.FormatMoney(ct.Total, cur),
			cli.FormatNumber(int64(ct.Count)),
			cli.FormatPercent(ct.SharePercent / 100),
		})
		labelW = max(labelW, len([]rune(ct.Category)))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By category",
		Headers: []string{"Category", "Total", "Count", "Share"},
		Rows:    rows,
	}))
	fmt.Println()
	top := totals[0].Total.Float64()
	for _, ct := range totals {
		fmt.Println(cli.RenderHorizontalBar(ct.Category, ct.Total.Float64(), top, labelW, 40))
	}

	rows = rows[:0]
	values := make([]float64, len(months))
	for i, m := range months {
		rows = append(rows, []string{
			m.Month.Format("2006-01"),
			cli.FormatMoney(m.Total, cur),
			cli.FormatNumber(int64(m.Count)),
		})
		values[len(months)-1-i] = m.Total.Float64()
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By month",
		Headers: []string{"Month", "Total", "Count"},
		Rows:    rows,
	}))
	if len(values) > 1 {
		fmt.Printf("  Trend %s\n", cli.RenderSparkline(values))
	}

	if flagChart != "" {
		img, err := report.PieChart(totals, cur)
		if err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		if err := writeImage(flagChart, img); err != nil {
			return err
		}
	}
	if flagTrend != "" {
		img, err := report.TrendChart(months, cur)
		if err != nil {
			return fmt.Errorf("rendering trend: %w", err)
		}
		if err := writeImage(flagTrend, img); err != nil {
			return err
		}
	}
	return nil
}

func writeImage(path string, img []byte) error {
	if img == nil {
		fmt.Fprintf(os.Stderr, "  Not enough data for %s\n", path)
		return nil
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("  Chart written to %s\n", path)
	return nil
}
