package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "List or manage expense categories",
	Args:    cobra.NoArgs,
	RunE:    runCategories,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add categories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCategoriesAdd,
}

var categoriesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a category no expense or budget uses",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesRm,
}

func init() {
	categoriesCmd.AddCommand(categoriesAddCmd, categoriesRmCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Println()
	for _, n := range s.categories.Names() {
		fmt.Printf("  %s\n", n)
	}
	return nil
}

func runCategoriesAdd(_ *cobra.Command, args []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	added, err := s.categories.Merge(args)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %d of %d categories\n", added, len(args))
	return nil
}

func runCategoriesRm(_ *cobra.Command, args []string) error {
	s, err := openSession(sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tracker.RemoveCategory(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("  Removed %s\n", args[0])
	return nil
}
