// Package sms exposes a minimal interface over the SMS gateway for the
// relay's services and handlers.
package sms

import (
	"context"

	"github.com/oggyb/smsdev/internal/smsdev"
)

// Gateway is the contract the relay needs from an SMS provider.
type Gateway interface {
	// Send submits a message. refer is echoed back by the provider.
	Send(ctx context.Context, to, content, refer string) error

	// Inbox returns the received messages matching the filter.
	Inbox(ctx context.Context, f smsdev.Filter) ([]smsdev.Message, error)

	// Balance returns the remaining credit in cents.
	Balance(ctx context.Context) (int, error)

	// NewFilter returns an empty inbox filter in the provider's date format.
	NewFilter() smsdev.Filter

	// Health checks whether the provider is reachable and accepts our key.
	Health(ctx context.Context) error
}
