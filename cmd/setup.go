package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/alert"
	"github.com/theirongolddev/scold/internal/config"
	"github.com/theirongolddev/scold/internal/model"
	"github.com/theirongolddev/scold/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to scold").
				Description("Track what you spend and get told off when a budget is blown."),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions(config.Currencies...)...).
				Value(&cfg.General.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&cfg.Appearance.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Severe alert above").
				Description("Overspending beyond this amount gets the harsh messages.").
				Value(&cfg.Alerts.SevereThreshold).
				Validate(func(s string) error {
					m, err := model.ParseMoney(s)
					if err == nil && !m.IsPositive() {
						err = errors.New("must be positive")
					}
					return err
				}),
			huh.NewConfirm().
				Title("Warn when a budget is nearly used up?").
				Value(&cfg.Alerts.WarnApproaching),
			huh.NewSelect[string]().
				Title("Message choice").
				Options(
					huh.NewOption("Random", alert.SelectionRandom),
					huh.NewOption("Round robin", alert.SelectionRoundRobin),
				).
				Value(&cfg.Alerts.Selection),
			huh.NewMultiSelect[string]().
				Title("Notify me via").
				Options(huh.NewOptions(config.Channels...)...).
				Value(&cfg.Notify.Channels),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `scold setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
