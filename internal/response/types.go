package response

import (
	"time"

	"github.com/oggyb/smsdev/internal/domain/inbox"
	"github.com/oggyb/smsdev/internal/scheduler"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status  string `json:"status"`
	Gateway string `json:"gateway"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type PollerControlPayload struct {
	Message string           `json:"message"`
	Status  scheduler.Status `json:"status"`
}

type PollerControlResponse struct {
	Success   bool                 `json:"success"`
	Data      PollerControlPayload `json:"data"`
	Timestamp string               `json:"timestamp"`
}

// ReceivedMessageDTO is the wire form of a stored inbound SMS.
type ReceivedMessageDTO struct {
	ID         string    `json:"id"`
	GatewayID  int64     `json:"gatewayId"`
	From       string    `json:"from"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"receivedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type InboxPayload struct {
	Items []ReceivedMessageDTO `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type InboxResponse struct {
	Success   bool         `json:"success"`
	Data      InboxPayload `json:"data"`
	Timestamp string       `json:"timestamp"`
}

type SendPayload struct {
	Message string `json:"message"`
	To      string `json:"to"`
	Refer   string `json:"refer"`
}

type SendResponse struct {
	Success   bool        `json:"success"`
	Data      SendPayload `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// BalancePayload carries the remaining gateway credit in cents.
type BalancePayload struct {
	Balance int `json:"balance"`
}

type BalanceResponse struct {
	Success   bool           `json:"success"`
	Data      BalancePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// FromReceivedMessages converts stored messages into DTOs.
func FromReceivedMessages(msgs []*inbox.ReceivedMessage) []ReceivedMessageDTO {
	out := make([]ReceivedMessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = ReceivedMessageDTO{
			ID:         m.ID.String(),
			GatewayID:  m.GatewayID,
			From:       m.From,
			Body:       m.Body,
			ReceivedAt: m.ReceivedAt,
			CreatedAt:  m.CreatedAt,
		}
	}
	return out
}
