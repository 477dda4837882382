package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/model"
	"github.com/theirongolddev/scold/internal/ofx"
)

var (
	flagImportCat    string
	flagImportDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <statement.ofx>",
	Short: "Import debits from an OFX/QFX bank or card statement",
	Long: "Import the debits of an OFX/QFX statement as expenses. Rows already in " +
		"the ledger (same date, amount and description) are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&flagImportCat, "category", "c", "Other", "Category for imported expenses")
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Show what would be imported")
	rootCmd.AddCommand(importCmd)
}

func expenseKey(e model.Expense) string {
	return fmt.Sprintf("%s|%d|%s", e.Date, e.Amount.Cents(), e.Description)
}

func runImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := context.Background()
	entries, err := ofx.NewParser(flagImportCat).Parse(ctx, f)
	if err != nil {
		return err
	}

	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	existing, err := s.store.ListExpenses(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[expenseKey(e)] = true
	}
	fitids := make(map[string]bool, len(entries))

	var fresh []model.Expense
	for _, en := range entries {
		key := expenseKey(en.Expense)
		if seen[key] || (en.FITID != "" && fitids[en.FITID]) {
			slog.Debug("skipping duplicate", "fitid", en.FITID, "date", en.Expense.Date.String())
			continue
		}
		seen[key] = true
		fitids[en.FITID] = true
		fresh = append(fresh, en.Expense)
	}

	skipped := len(entries) - len(fresh)
	if flagImportDryRun || len(fresh) == 0 {
		for _, e := range fresh {
			fmt.Printf("  %s  %10s  %-12s %s\n", e.Date, cli.FormatMoney(e.Amount, s.currency()), e.Category, e.Description)
		}
		fmt.Printf("  %d to import, %d duplicates skipped\n", len(fresh), skipped)
		return nil
	}

	var out io.Writer = os.Stderr
	if flagQuiet {
		out = io.Discard
	}
	bar := progressbar.NewOptions(len(fresh),
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Importing[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
	)

	ids, alerts, err := s.tracker.AddExpenses(ctx, fresh, func(model.Expense) {
		if err := bar.Add(1); err != nil {
			slog.Warn("progress bar update failed", "error", err)
		}
	})
	if err != nil {
		printAlertSummary(alerts)
		return fmt.Errorf("imported %d of %d before failing: %w", len(ids), len(fresh), err)
	}

	fmt.Printf("  Imported %d expenses, %d duplicates skipped\n", len(ids), skipped)
	printAlertSummary(alerts)
	return nil
}
