package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/smsdev/internal/domain/inbox"
	"github.com/oggyb/smsdev/internal/response"
	"github.com/oggyb/smsdev/internal/scheduler"
	"github.com/oggyb/smsdev/internal/smsdev"
)

type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Sync(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRelay) Send(ctx context.Context, to, content, refer string) (string, error) {
	args := m.Called(ctx, to, content, refer)
	return args.String(0), args.Error(1)
}

func (m *MockRelay) Balance(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRelay) Inbox(ctx context.Context, page, limit int) ([]*inbox.ReceivedMessage, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*inbox.ReceivedMessage), args.Get(1).(int64), args.Error(2)
}

type fakePoller struct {
	st  scheduler.Status
	err error
	ops []string
}

func (f *fakePoller) Start() error {
	f.ops = append(f.ops, "start")
	f.st.Running = true
	return f.err
}

func (f *fakePoller) Stop() error {
	f.ops = append(f.ops, "stop")
	f.st.Running = false
	return f.err
}

func (f *fakePoller) RunNow() error {
	f.ops = append(f.ops, "run")
	return f.err
}

func (f *fakePoller) IsRunning() bool                   { return f.st.Running }
func (f *fakePoller) Status() (scheduler.Status, error) { return f.st, nil }
func (f *fakePoller) Close()                            {}

type healthFunc func(ctx context.Context) error

func (h healthFunc) Health(ctx context.Context) error { return h(ctx) }

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHome(t *testing.T) {
	h := NewHomeHandler("smsdev-relay", nil)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var welcome response.WelcomeResponse
	decode(t, rec, &welcome)
	assert.Equal(t, "Welcome to smsdev-relay", welcome.Data.Message)

	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health response.HealthResponse
	decode(t, rec, &health)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unchecked", health.Data.Gateway)
}

func TestHealth_Gateway(t *testing.T) {
	ok := NewHomeHandler("x", healthFunc(func(context.Context) error { return nil }))
	rec := httptest.NewRecorder()
	ok.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gateway":"ok"`)

	down := NewHomeHandler("x", healthFunc(func(context.Context) error { return errors.New("refused") }))
	rec = httptest.NewRecorder()
	down.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetInbox(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"limit over max", "?limit=500", 1, 20},
		{"garbage", "?page=x&limit=-1", 1, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			relay := &MockRelay{}
			relay.On("Inbox", mock.Anything, tc.wantPage, tc.wantLimit).
				Return([]*inbox.ReceivedMessage{{GatewayID: 9, From: "5511988887777", Body: "oi"}}, int64(1), nil)

			h := NewRelayHandler(relay, &fakePoller{})
			rec := httptest.NewRecorder()
			h.GetInbox(rec, httptest.NewRequest(http.MethodGet, "/inbox"+tc.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var got response.InboxResponse
			decode(t, rec, &got)
			assert.Equal(t, tc.wantPage, got.Data.Page)
			assert.Equal(t, tc.wantLimit, got.Data.Limit)
			require.Len(t, got.Data.Items, 1)
			assert.Equal(t, int64(9), got.Data.Items[0].GatewayID)
			relay.AssertExpectations(t)
		})
	}
}

func TestGetInbox_Error(t *testing.T) {
	relay := &MockRelay{}
	relay.On("Inbox", mock.Anything, 1, 20).Return(nil, int64(0), errors.New("db down"))

	rec := httptest.NewRecorder()
	NewRelayHandler(relay, &fakePoller{}).GetInbox(rec, httptest.NewRequest(http.MethodGet, "/inbox", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSendMessage(t *testing.T) {
	relay := &MockRelay{}
	relay.On("Send", mock.Anything, "11988887777", "oi", "").Return("generated-refer", nil)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"to":" 11988887777 ","content":"oi"}`)
	NewRelayHandler(relay, &fakePoller{}).SendMessage(rec, httptest.NewRequest(http.MethodPost, "/messages", body))

	require.Equal(t, http.StatusAccepted, rec.Code)
	var got response.SendResponse
	decode(t, rec, &got)
	assert.Equal(t, "generated-refer", got.Data.Refer)
	assert.Equal(t, "11988887777", got.Data.To)
}

func TestSendMessage_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"missing to", `{"content":"oi"}`, nil, http.StatusBadRequest},
		{"missing content", `{"to":"11988887777","content":"  "}`, nil, http.StatusBadRequest},
		{"invalid number", `{"to":"123","content":"oi"}`, fmt.Errorf("%w: too short", smsdev.ErrInvalidNumber), http.StatusBadRequest},
		{"gateway rejected", `{"to":"123","content":"oi"}`, &smsdev.APIError{Situacao: "ERRO", Codigo: "403"}, http.StatusBadGateway},
		{"gateway timeout", `{"to":"123","content":"oi"}`, fmt.Errorf("smsdev /send: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			relay := &MockRelay{}
			if tc.err != nil {
				relay.On("Send", mock.Anything, "123", "oi", "").Return("", tc.err)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(tc.body))
			NewRelayHandler(relay, &fakePoller{}).SendMessage(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			var got response.ErrorResponse
			decode(t, rec, &got)
			assert.False(t, got.Success)
			assert.Equal(t, tc.status, got.Error.Code)
		})
	}
}

func TestGetBalance(t *testing.T) {
	relay := &MockRelay{}
	relay.On("Balance", mock.Anything).Return(1200, nil).Once()
	relay.On("Balance", mock.Anything).Return(0, &smsdev.APIError{Situacao: "ERRO"}).Once()

	h := NewRelayHandler(relay, &fakePoller{})

	rec := httptest.NewRecorder()
	h.GetBalance(rec, httptest.NewRequest(http.MethodGet, "/balance", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got response.BalanceResponse
	decode(t, rec, &got)
	assert.Equal(t, 1200, got.Data.Balance)

	rec = httptest.NewRecorder()
	h.GetBalance(rec, httptest.NewRequest(http.MethodGet, "/balance", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestControlPoller(t *testing.T) {
	p := &fakePoller{}
	h := NewRelayHandler(&MockRelay{}, p)

	for _, action := range []string{"start", "run", "stop"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/poller", strings.NewReader(`{"action":"`+action+`"}`))
		h.ControlPoller(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, action)
	}
	assert.Equal(t, []string{"start", "run", "stop"}, p.ops)

	rec := httptest.NewRecorder()
	h.ControlPoller(rec, httptest.NewRequest(http.MethodPost, "/poller", strings.NewReader(`{"action":"pause"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ControlPoller(rec, httptest.NewRequest(http.MethodPost, "/poller", strings.NewReader(`nope`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestControlPoller_Closed(t *testing.T) {
	h := NewRelayHandler(&MockRelay{}, &fakePoller{err: scheduler.ErrClosed})

	rec := httptest.NewRecorder()
	h.ControlPoller(rec, httptest.NewRequest(http.MethodPost, "/poller", strings.NewReader(`{"action":"start"}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetPoller(t *testing.T) {
	h := NewRelayHandler(&MockRelay{}, &fakePoller{st: scheduler.Status{Running: true, Runs: 4}})

	rec := httptest.NewRecorder()
	h.GetPoller(rec, httptest.NewRequest(http.MethodGet, "/poller", nil))

	var got response.PollerControlResponse
	decode(t, rec, &got)
	assert.True(t, got.Data.Status.Running)
	assert.Equal(t, 4, got.Data.Status.Runs)
}
