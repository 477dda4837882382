package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/scold/internal/notify"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the alert feed over HTTP",
	Long: "Serve recent alerts as JSON (/v1/alerts), live alerts as server-sent " +
		"events (/v1/stream) and trigger checks with POST /v1/check.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, else 127.0.0.1:8787)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	feed := notify.NewFeed(notify.DefaultFeedSize)

	s, err := openSession(sessionOptions{feed: feed})
	if err != nil {
		return err
	}
	defer s.Close()

	addr := flagAddr
	if addr == "" {
		addr = s.cfg.Notify.FeedAddr
	}
	server := notify.NewServer(addr, feed, func(ctx context.Context) (int, error) {
		alerts, err := s.tracker.Check(ctx)
		return len(alerts), err
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "  Serving alert feed on http://%s (Ctrl+C to stop)\n", server.Addr())
	return server.Run(ctx)
}
