package alerts

import "context"

// Notification is a fully rendered outbound message.
type Notification struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier delivers notifications to an external channel.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers one notification. Implementations must be safe for
	// concurrent use. The core performs no retries; a failed send is
	// recorded in the run summary and the run proceeds.
	Send(ctx context.Context, n Notification) error
}
