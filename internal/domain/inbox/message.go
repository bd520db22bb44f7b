// Package inbox holds the domain model and invariants for SMS replies
// received through the gateway.
package inbox

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidGatewayID is returned when the gateway id is not positive.
	ErrInvalidGatewayID = errors.New("gateway message id must be positive")
	// ErrEmptySender is returned when no sender number is present.
	ErrEmptySender = errors.New("sender phone number is required")
)

// ReceivedMessage is an inbound SMS stored by the relay.
type ReceivedMessage struct {
	ID         uuid.UUID
	GatewayID  int64
	From       string
	Body       string
	ReceivedAt time.Time
	CreatedAt  time.Time
}

// NewReceivedMessage builds a message and enforces basic domain rules.
func NewReceivedMessage(gatewayID int64, from, body string, receivedAt time.Time) (*ReceivedMessage, error) {
	from = strings.TrimSpace(from)

	if gatewayID <= 0 {
		return nil, ErrInvalidGatewayID
	}
	if from == "" {
		return nil, ErrEmptySender
	}

	return &ReceivedMessage{
		ID:         uuid.New(),
		GatewayID:  gatewayID,
		From:       from,
		Body:       body,
		ReceivedAt: receivedAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}, nil
}
