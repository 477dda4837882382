package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/theirongolddev/scold/internal/cli"
)

// Console writes each notification as a single "[SCOLD] message" line.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole returns a console channel writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Deliver(_ context.Context, n Notification) error {
	line := "[SCOLD] " + n.Message
	if n.Tier != "" {
		line = cli.TierStyle(n.Tier).Render(line)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.w, line)
	return err
}
