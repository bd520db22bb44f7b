package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/smsdev/internal/domain/inbox"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, BalancePayload{Balance: 1200})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var got BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, 1200, got.Data.Balance)

	_, err := time.Parse(time.RFC3339, got.Timestamp)
	assert.NoError(t, err)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadGateway, "gateway said no")

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, http.StatusBadGateway, got.Error.Code)
	assert.Equal(t, "gateway said no", got.Error.Message)
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestFromReceivedMessages(t *testing.T) {
	id := uuid.New()
	at := time.Date(2018, time.January, 19, 13, 35, 14, 0, time.UTC)

	dtos := FromReceivedMessages([]*inbox.ReceivedMessage{{
		ID: id, GatewayID: 7, From: "5511988887777", Body: "oi", ReceivedAt: at, CreatedAt: at,
	}})

	require.Len(t, dtos, 1)
	assert.Equal(t, id.String(), dtos[0].ID)
	assert.Equal(t, int64(7), dtos[0].GatewayID)
	assert.Equal(t, "5511988887777", dtos[0].From)
	assert.Equal(t, "oi", dtos[0].Body)
	assert.Empty(t, FromReceivedMessages(nil))
}
