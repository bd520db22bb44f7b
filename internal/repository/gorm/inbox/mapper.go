package inboxgorm

import (
	"github.com/oggyb/smsdev/internal/domain/inbox"
)

func toDomain(m *ReceivedMessageModel) *inbox.ReceivedMessage {
	return &inbox.ReceivedMessage{
		ID:         m.ID,
		GatewayID:  m.GatewayID,
		From:       m.From,
		Body:       m.Body,
		ReceivedAt: m.ReceivedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainMany(models []ReceivedMessageModel) []*inbox.ReceivedMessage {
	out := make([]*inbox.ReceivedMessage, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

func fromDomain(d *inbox.ReceivedMessage) *ReceivedMessageModel {
	return &ReceivedMessageModel{
		ID:         d.ID,
		GatewayID:  d.GatewayID,
		From:       d.From,
		Body:       d.Body,
		ReceivedAt: d.ReceivedAt,
		CreatedAt:  d.CreatedAt,
	}
}
