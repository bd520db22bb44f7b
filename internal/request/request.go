package request

import (
	"errors"
	"strings"
)

// PollerRequest is the body of POST /poller.
type PollerRequest struct {
	// Action is one of "start", "stop" or "run".
	Action string `json:"action" example:"start"`
}

// SendMessageRequest is the body of POST /messages.
type SendMessageRequest struct {
	To      string `json:"to" example:"11988887777"`
	Content string `json:"content" example:"Seu pedido saiu para entrega"`
	// Refer is echoed back by the gateway. A UUID is generated when empty.
	Refer string `json:"refer,omitempty" example:"order-42"`
}

var (
	ErrMissingTo      = errors.New("'to' is required")
	ErrMissingContent = errors.New("'content' is required")
)

// Validate trims the fields and checks the required ones.
func (r *SendMessageRequest) Validate() error {
	r.To = strings.TrimSpace(r.To)
	r.Refer = strings.TrimSpace(r.Refer)

	if r.To == "" {
		return ErrMissingTo
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrMissingContent
	}
	return nil
}
