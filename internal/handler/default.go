package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/oggyb/smsdev/internal/response"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HomeHandler serves the root and health endpoints.
type HomeHandler struct {
	appName string
	gateway HealthChecker
}

const healthTimeout = 5 * time.Second

// NewHomeHandler returns a HomeHandler. gateway may be nil, in which case
// /health reports the process only.
func NewHomeHandler(appName string, gateway HealthChecker) *HomeHandler {
	return &HomeHandler{appName: appName, gateway: gateway}
}

// Index godoc
// @Summary     Welcome endpoint
// @Description Returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.WelcomePayload{
		Message: "Welcome to " + h.appName,
	})
}

// Health godoc
// @Summary     Health check
// @Description Reports whether the API is up and the SMS gateway accepts our key.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Failure     503 {object} response.ErrorResponse
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	payload := response.HealthPayload{Status: "ok", Gateway: "unchecked"}

	if h.gateway != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := h.gateway.Health(ctx); err != nil {
			response.RespondError(w, http.StatusServiceUnavailable, "gateway unavailable: "+err.Error())
			return
		}
		payload.Gateway = "ok"
	}

	response.RespondJSON(w, http.StatusOK, payload)
}
