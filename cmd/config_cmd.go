package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagDB != "" {
		cfg.General.Database = flagDB
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:   %s\n", cfg.General.Currency)
	fmt.Printf("    Database:   %s\n", cfg.DatabasePath())
	fmt.Printf("    Categories: %s\n", strings.Join(cfg.General.Categories, ", "))
	fmt.Println()

	fmt.Println("  [Alerts]")
	fmt.Printf("    Severe above:     %s\n", cfg.Alerts.SevereThreshold)
	fmt.Printf("    Warn approaching: %v (at %s of the limit)\n", cfg.Alerts.WarnApproaching, cfg.Alerts.Proximity)
	fmt.Printf("    Message choice:   %s\n", cfg.Alerts.Selection)
	fmt.Println()

	fmt.Println("  [Notify]")
	fmt.Printf("    Channels: %s\n", strings.Join(cfg.Notify.Channels, ", "))
	fmt.Printf("    Timeout:  %s\n", cfg.NotifyTimeout())
	if cfg.Notify.FeedAddr != "" {
		fmt.Printf("    Feed:     %s\n", cfg.Notify.FeedAddr)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Receipt]")
	fmt.Printf("    Tesseract: %s\n", cfg.Receipt.Tesseract)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		fmt.Println("  Problems:")
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Printf("    - %s\n", line)
		}
		fmt.Println()
	}

	fmt.Println("  Run `scold setup` to reconfigure.")
	return nil
}
