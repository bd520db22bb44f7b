package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oggyb/smsdev/internal/cache/redis"
	"github.com/oggyb/smsdev/internal/config"
	"github.com/oggyb/smsdev/internal/handler"
	"github.com/oggyb/smsdev/internal/metrics"
	routes "github.com/oggyb/smsdev/internal/router"
	"github.com/oggyb/smsdev/internal/scheduler"
	"github.com/oggyb/smsdev/internal/server"
	"github.com/oggyb/smsdev/internal/service"
	"github.com/oggyb/smsdev/internal/sms"
)

// @title       SmsDev Relay API
// @version     1.0
// @description Sends SMS through SmsDev and exposes the replies collected by the inbox poller.
// @host        localhost:8080
// @BasePath    /
func main() {
	rootCtx := context.Background()

	cfg := config.New()

	// Cache
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(rootCtx); err != nil {
		log.Fatalf("[Main] Failed to connect to redis: %v", err)
	}
	defer cache.Close()

	// Inbox store
	repo, store, err := openInbox(cfg)
	if err != nil {
		log.Fatalf("[Main] Failed to open inbox store: %v", err)
	}
	defer store.Close()
	log.Printf("[Main] Inbox store: %s", cfg.Storage.Driver)

	// Gateway
	client, err := sms.NewSmsDevClient(cfg)
	if err != nil {
		log.Fatalf("[Main] Invalid SmsDev configuration: %v", err)
	}
	gateway := sms.NewSmsDevGateway(client)

	healthCtx, cancelHealth := context.WithTimeout(rootCtx, cfg.SMSDev.Timeout)
	if err := gateway.Health(healthCtx); err != nil {
		// Keep serving stored messages; the poller will retry.
		log.Printf("[Main] SmsDev gateway not healthy at startup: %v", err)
	}
	cancelHealth()

	m := metrics.New()

	// Relay
	relay := service.NewRelayService(
		repo,
		gateway,
		cache,
		cfg.Cache.SeenTTL,
		cfg.Cache.BalanceTTL,
		service.WithMetrics(m),
	)

	poller := scheduler.NewPoller(relay, cfg.Poller.Interval, cfg.Poller.BatchTimeout)
	defer poller.Close()

	// HTTP
	deps := routes.AppDeps{
		Home:    handler.NewHomeHandler(cfg.App.Name, gateway),
		Relay:   handler.NewRelayHandler(relay, poller),
		Metrics: m.Handler(),
	}

	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps, m)

	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[Main] HTTP server listening on %s", addr)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Main] HTTP server error: %v", err)
		}
	}()

	if err := poller.Start(); err != nil {
		log.Fatalf("[Main] Poller error: %v", err)
	}
	log.Println("[Main] Inbox poller started.")

	<-ctx.Done()
	log.Println("[Main] Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("[Main] Stopping poller...")
	if err := poller.Stop(); err != nil {
		log.Printf("[Main] Poller did not stop cleanly: %v", err)
	} else {
		log.Println("[Main] Poller stopped.")
	}

	log.Println("[Main] Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] HTTP server graceful shutdown failed: %v", err)
	} else {
		log.Println("[Main] HTTP server stopped.")
	}

	log.Println("[Main] Shutdown complete.")
}
