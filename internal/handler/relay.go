package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/oggyb/smsdev/internal/request"
	"github.com/oggyb/smsdev/internal/response"
	"github.com/oggyb/smsdev/internal/scheduler"
	"github.com/oggyb/smsdev/internal/service"
	"github.com/oggyb/smsdev/internal/smsdev"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// RelayHandler exposes the relay service and the inbox poller over HTTP.
type RelayHandler struct {
	relay  service.RelayService
	poller scheduler.Poller
}

func NewRelayHandler(relay service.RelayService, poller scheduler.Poller) *RelayHandler {
	return &RelayHandler{relay: relay, poller: poller}
}

// GetInbox godoc
// @Summary     List received messages
// @Description Returns a page of inbound SMS stored by the poller, newest first.
// @Tags        inbox
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.InboxResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /inbox [get]
func (h *RelayHandler) GetInbox(w http.ResponseWriter, r *http.Request) {
	page := defaultPage
	limit := defaultLimit

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= maxLimit {
		limit = v
	}

	items, total, err := h.relay.Inbox(r.Context(), page, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.InboxPayload{
		Items: response.FromReceivedMessages(items),
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// SendMessage godoc
// @Summary     Send an SMS
// @Description Relays a message through the SMS gateway.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body request.SendMessageRequest true "Message to send"
// @Success     202 {object} response.SendResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     502 {object} response.ErrorResponse
// @Failure     504 {object} response.ErrorResponse
// @Router      /messages [post]
func (h *RelayHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req request.SendMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	refer, err := h.relay.Send(r.Context(), req.To, req.Content, req.Refer)
	if err != nil {
		response.RespondError(w, gatewayStatus(err), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusAccepted, response.SendPayload{
		Message: "message queued",
		To:      req.To,
		Refer:   refer,
	})
}

// GetBalance godoc
// @Summary     Gateway balance
// @Description Returns the remaining SMS credit in cents.
// @Tags        messages
// @Produce     json
// @Success     200 {object} response.BalanceResponse
// @Failure     502 {object} response.ErrorResponse
// @Failure     504 {object} response.ErrorResponse
// @Router      /balance [get]
func (h *RelayHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.relay.Balance(r.Context())
	if err != nil {
		response.RespondError(w, gatewayStatus(err), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.BalancePayload{Balance: balance})
}

// ControlPoller godoc
// @Summary     Control the inbox poller
// @Description Starts or stops periodic inbox synchronisation, or triggers a single run.
// @Tags        poller
// @Accept      json
// @Produce     json
// @Param       request body request.PollerRequest true "Poller action (start|stop|run)"
// @Success     200 {object} response.PollerControlResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     503 {object} response.ErrorResponse
// @Router      /poller [post]
func (h *RelayHandler) ControlPoller(w http.ResponseWriter, r *http.Request) {
	var req request.PollerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var (
		err error
		msg string
	)
	switch req.Action {
	case "start":
		msg, err = "poller started", h.poller.Start()
	case "stop":
		msg, err = "poller stopped", h.poller.Stop()
	case "run":
		msg, err = "sync triggered", h.poller.RunNow()
	default:
		response.RespondError(w, http.StatusBadRequest, "action must be 'start', 'stop' or 'run'")
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	st, err := h.poller.Status()
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.PollerControlPayload{Message: msg, Status: st})
}

// GetPoller godoc
// @Summary     Poller status
// @Tags        poller
// @Produce     json
// @Success     200 {object} response.PollerControlResponse
// @Failure     503 {object} response.ErrorResponse
// @Router      /poller [get]
func (h *RelayHandler) GetPoller(w http.ResponseWriter, r *http.Request) {
	st, err := h.poller.Status()
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, response.PollerControlPayload{Message: "ok", Status: st})
}

// gatewayStatus maps gateway failures onto HTTP statuses.
func gatewayStatus(err error) int {
	switch {
	case errors.Is(err, smsdev.ErrInvalidNumber):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
