// Package cmd implements the scold CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/config"
	"github.com/theirongolddev/scold/internal/logging"
	"github.com/theirongolddev/scold/internal/notify"
	"github.com/theirongolddev/scold/internal/store"
	"github.com/theirongolddev/scold/internal/tracker"
)

var (
	flagDB        string
	flagLogLevel  string
	flagLogFormat string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:           "scold",
	Short:         "Expense tracker that scolds you for overspending",
	Long:          "Record expenses, set per-category budgets and get told off when you blow them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logging.Setup(os.Stderr, flagLogLevel, flagLogFormat)
	},
	RunE: runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "  error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Expense database path (overrides config and SCOLD_DB)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output and console alerts")

	listFlags(rootCmd)
}

// session is everything a command needs to read and write the ledger.
type session struct {
	cfg        config.Config
	store      *store.Store
	categories *config.Categories
	dispatcher *notify.Dispatcher
	tracker    *tracker.Tracker
}

type sessionOptions struct {
	// noConsole drops the console channel, e.g. while the TUI owns the screen.
	noConsole bool
	// feed, when set, always receives alerts whether or not the "feed"
	// channel is configured.
	feed *notify.Feed
}

// openSession loads config, opens the store and wires the tracker.
func openSession(opts sessionOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.General.Database = flagDB
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", config.Path(), err)
	}
	policy, err := cfg.AlertPolicy()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, store: st}
	s.categories = config.NewCategories(&s.cfg)
	s.dispatcher = notify.NewDispatcher(cfg.NotifyTimeout(), channels(cfg.Notify.Channels, opts)...)
	s.tracker = tracker.New(st, s.categories, policy, s.dispatcher, tracker.Options{
		WarnApproaching: cfg.Alerts.WarnApproaching,
	})
	if _, err := s.tracker.ReconcileCategories(context.Background()); err != nil {
		slog.Warn("could not restore categories in use", "error", err)
	}
	return s, nil
}

func channels(names []string, opts sessionOptions) []notify.Channel {
	var out []notify.Channel
	if opts.feed != nil {
		out = append(out, opts.feed)
	}
	for _, name := range names {
		switch name {
		case "console":
			if !opts.noConsole && !flagQuiet {
				out = append(out, notify.NewConsole(os.Stderr))
			}
		case "notification":
			out = append(out, notify.Desktop{})
		case "popup":
			out = append(out, notify.Popup{})
		case "feed":
			// only meaningful while `scold serve` holds a feed
		default:
			slog.Warn("unknown notification channel", "channel", name)
		}
	}
	return out
}

func (s *session) Close() error {
	return s.store.Close()
}

func (s *session) currency() string {
	return s.cfg.General.Currency
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid expense id %q", arg)
	}
	return id, nil
}
