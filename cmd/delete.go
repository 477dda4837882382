package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	alerts, err := s.tracker.DeleteExpense(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Printf("  Deleted #%d\n", id)
	printAlertSummary(alerts)
	return nil
}
