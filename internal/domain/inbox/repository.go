package inbox

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a message is not stored.
var ErrNotFound = errors.New("received message not found")

// Repository defines the persistence operations for received messages.
type Repository interface {
	// SaveIfAbsent stores m unless a message with the same gateway id exists.
	// It reports whether a row was inserted.
	SaveIfAbsent(ctx context.Context, m *ReceivedMessage) (bool, error)

	// List returns a page of messages, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*ReceivedMessage, int64, error)

	// GetByGatewayID returns the message with the given gateway id or ErrNotFound.
	GetByGatewayID(ctx context.Context, gatewayID int64) (*ReceivedMessage, error)
}
