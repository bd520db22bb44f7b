package smsdev

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages_ConvertsFromAPITimezone(t *testing.T) {
	c, _ := newTestClient(inboxOne)

	require.NoError(t, c.SetDateFormat("Y-m-d H:i:s").SetFilter().IsUnread().Fetch(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 1)

	assert.Equal(t, 2515974, msgs[0].ID)
	assert.Equal(t, "2018-01-19 13:35:14", msgs[0].Date)
	assert.Equal(t, "5511988887777", msgs[0].Number)
	assert.Equal(t, "Resposta", msgs[0].Text)
	assert.Equal(t, time.Date(2018, time.January, 19, 13, 35, 14, 0, time.UTC), msgs[0].ReceivedAt)
}

func TestMessages_UnixFormat(t *testing.T) {
	c, _ := newTestClient(inboxJune)

	require.NoError(t, c.SetDateFormat("U").SetFilter().DateFrom("1516330800").DateTo("1559444399").Fetch(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "1529418914", msgs[0].Date)
	assert.Equal(t, "Resposta 1", msgs[0].Text)
}

func TestMessages_DisplayLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	c, _ := newTestClient(inboxOne, WithLocation(tokyo), WithDateFormat("Y-m-d H:i:s"))
	require.NoError(t, c.Fetch(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "2018-01-19 22:35:14", msgs[0].Date)
}

func TestMessages_NoMessagesRecord(t *testing.T) {
	c, _ := newTestClient(inboxEmpty)

	require.NoError(t, c.SetFilter().ByID(2515974).Fetch(context.Background()))
	assert.Empty(t, c.Messages())
}

func TestMessages_SkipsUnusableRecords(t *testing.T) {
	body := `[
		{"situacao":"OK","descricao":"SEM MENSAGENS"},
		"stray",
		42,
		{"id_sms_read":"abc","data_read":"19/01/2018 11:35:14","telefone":"1","descricao":"bad id"},
		{"id_sms_read":"9","data_read":"yesterday","telefone":"1","descricao":"bad date"},
		{"id_sms_read":"10","data_read":"19/01/2018 11:35:14","telefone":"5511988887777","descricao":"first"},
		{"id_sms_read":11,"data_read":"20/01/2018 08:00:00","telefone":5511977776666,"descricao":"second"}
	]`
	c, _ := newTestClient(body, WithDateFormat("d/m/Y H:i"))
	require.NoError(t, c.Fetch(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 2)

	assert.Equal(t, 10, msgs[0].ID)
	assert.Equal(t, "19/01/2018 13:35", msgs[0].Date)
	assert.Equal(t, "first", msgs[0].Text)

	assert.Equal(t, 11, msgs[1].ID)
	assert.Equal(t, "5511977776666", msgs[1].Number)
	assert.Equal(t, "20/01/2018 10:00", msgs[1].Date)
}

func TestMessages_DuplicateIDsKeepLatest(t *testing.T) {
	body := `[
		{"id_sms_read":"1","data_read":"19/01/2018 11:35:14","telefone":"a","descricao":"old"},
		{"id_sms_read":"2","data_read":"19/01/2018 11:35:14","telefone":"b","descricao":"other"},
		{"id_sms_read":"1","data_read":"19/01/2018 11:35:14","telefone":"a","descricao":"new"}
	]`
	c, _ := newTestClient(body)
	require.NoError(t, c.Fetch(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, 1, msgs[0].ID)
	assert.Equal(t, "new", msgs[0].Text)
	assert.Equal(t, 2, msgs[1].ID)
}

func TestMessages_AfterNonInboxCall(t *testing.T) {
	c, _ := newTestClient(`{"situacao":"OK","saldo_sms":"5"}`)
	_, err := c.Balance(context.Background())
	require.NoError(t, err)

	assert.Empty(t, c.Messages())
}
