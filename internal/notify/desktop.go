package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Swapped out in tests so nothing pops up on the developer's desktop.
var (
	beeepNotify = func(title, message string) error { return beeep.Notify(title, message, "") }
	beeepAlert  = func(title, message string) error { return beeep.Alert(title, message, "") }
)

// Desktop sends a system notification.
type Desktop struct{}

func (Desktop) Name() string { return "notification" }

func (Desktop) Deliver(_ context.Context, n Notification) error {
	return beeepNotify(n.Title, n.Message)
}

// Popup shows an alert with a sound, the closest thing to a modal dialog
// the notification daemon offers.
type Popup struct{}

func (Popup) Name() string { return "popup" }

func (Popup) Deliver(_ context.Context, n Notification) error {
	return beeepAlert(n.Title, n.Message)
}
