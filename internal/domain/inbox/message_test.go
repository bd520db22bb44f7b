package inbox

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceivedMessage(t *testing.T) {
	at := time.Date(2018, time.January, 19, 11, 35, 14, 0, time.FixedZone("BRST", -2*3600))

	m, err := NewReceivedMessage(2515974, " 5511988887777 ", "Resposta", at)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, int64(2515974), m.GatewayID)
	assert.Equal(t, "5511988887777", m.From)
	assert.Equal(t, "Resposta", m.Body)
	assert.Equal(t, time.UTC, m.ReceivedAt.Location())
	assert.True(t, at.Equal(m.ReceivedAt))
}

func TestNewReceivedMessage_Invalid(t *testing.T) {
	_, err := NewReceivedMessage(0, "5511988887777", "x", time.Now())
	assert.ErrorIs(t, err, ErrInvalidGatewayID)

	_, err = NewReceivedMessage(1, "  ", "x", time.Now())
	assert.ErrorIs(t, err, ErrEmptySender)
}
