package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/receipt"
)

var (
	flagScanAdd  bool
	flagScanCat  string
	flagScanDate string
	flagScanDesc string
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Read a receipt image and find its total",
	Long: "Run OCR on a receipt image, print the text and the detected total. " +
		"With --add the total is recorded as an expense.",
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&flagScanAdd, "add", false, "Record the detected total as an expense")
	scanCmd.Flags().StringVarP(&flagScanCat, "category", "c", "Other", "Category when adding")
	scanCmd.Flags().StringVar(&flagScanDate, "date", "", "Date when adding (default today)")
	scanCmd.Flags().StringVarP(&flagScanDesc, "desc", "d", "receipt", "Description when adding")
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, args []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	var ocr receipt.Extractor = receipt.Tesseract{
		Binary:   s.cfg.Receipt.Tesseract,
		Language: s.cfg.Receipt.Language,
	}
	text := ocr.Extract(ctx, args[0])
	if text == "" {
		return fmt.Errorf("no text found in %s (is tesseract installed?)", args[0])
	}
	if !flagQuiet {
		fmt.Println()
		fmt.Println(cli.Muted(text))
		fmt.Println()
	}

	total, ok := receipt.DetectTotal(text)
	if !ok {
		return fmt.Errorf("no amount found in %s", args[0])
	}
	fmt.Printf("  Detected total: %s\n", cli.FormatMoney(total, s.currency()))
	if !flagScanAdd {
		return nil
	}

	e, err := expenseFromFlags(total.String(), flagScanCat, flagScanDate, flagScanDesc)
	if err != nil {
		return err
	}
	id, alerts, err := s.tracker.AddExpense(ctx, e)
	if err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}
	fmt.Printf("  Added #%d: %s on %s (%s)\n", id, cli.FormatMoney(e.Amount, s.currency()), e.Category, e.Date)
	printAlertSummary(alerts)
	return nil
}
