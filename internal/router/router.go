package routes

import (
	"net/http"

	_ "github.com/oggyb/smsdev/internal/docs" // swagger docs
	"github.com/oggyb/smsdev/internal/response"
	swaggerHandler "github.com/swaggo/http-swagger"
)

type AppDeps struct {
	Home  HomeHandler
	Relay RelayHandler

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type RelayHandler interface {
	GetInbox(w http.ResponseWriter, r *http.Request)
	SendMessage(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	ControlPoller(w http.ResponseWriter, r *http.Request)
	GetPoller(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("GET /inbox", d.Relay.GetInbox)
	mux.HandleFunc("POST /messages", d.Relay.SendMessage)
	mux.HandleFunc("GET /balance", d.Relay.GetBalance)
	mux.HandleFunc("GET /poller", d.Relay.GetPoller)
	mux.HandleFunc("POST /poller", d.Relay.ControlPoller)

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// 404 for everything else
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
