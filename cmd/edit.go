package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/model"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an expense",
	Long:  "Change an expense. Only the fields given as flags are replaced.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var (
	flagEditAmount string
	flagEditCat    string
	flagEditDate   string
	flagEditDesc   string
)

func init() {
	editCmd.Flags().StringVarP(&flagEditAmount, "amount", "a", "", "New amount")
	editCmd.Flags().StringVarP(&flagEditCat, "category", "c", "", "New category")
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().StringVarP(&flagEditDesc, "desc", "d", "", "New description")
	rootCmd.AddCommand(editCmd)
}

func runEdit(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	flags := c.Flags()
	if flags.Changed("amount") {
		if e.Amount, err = model.ParseMoney(flagEditAmount); err != nil {
			return err
		}
	}
	if flags.Changed("category") {
		e.Category = strings.TrimSpace(flagEditCat)
	}
	if flags.Changed("date") {
		if e.Date, err = model.ParseDate(flagEditDate); err != nil {
			return err
		}
	}
	if flags.Changed("desc") {
		e.Description = strings.TrimSpace(flagEditDesc)
	}

	alerts, err := s.tracker.UpdateExpense(ctx, e)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	fmt.Printf("  Updated #%d: %s on %s (%s)\n", e.ID, cli.FormatMoney(e.Amount, s.currency()), e.Category, e.Date)
	printAlertSummary(alerts)
	return nil
}
