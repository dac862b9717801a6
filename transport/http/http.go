package http

import (
	"context"
	"errors"
	"giftlist/config"
	"giftlist/shared/constant"
	"giftlist/transport/http/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config *config.Config
	Router router.Router
	state  atomic.Int32
	server *http.Server
}

func New(cfg *config.Config, r router.Router) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
	}
}

// Serve blocks until the server has shut down after SIGINT or SIGTERM.
func (h *HTTP) Serve() {
	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: time.Duration(h.Config.Server.ReadTimeoutSeconds) * time.Second,
		ReadTimeout:       time.Duration(h.Config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(h.Config.Server.WriteTimeoutSeconds) * time.Second,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)

	go func() {
		log.Info().Str("addr", h.server.Addr).Msg("Starting up HTTP server.")

		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	case <-signals:
		h.respondToSigterm()
	}
}

// Handler builds the routed handler and marks the server ready.
func (h *HTTP) Handler() http.Handler {
	mux := chi.NewRouter()

	h.Router.SetupRoutes(mux, h.Ready)
	h.setState(ServerStateReady)

	return mux
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Ready reports whether the server still accepts traffic.
func (h *HTTP) Ready() bool {
	return h.State() == ServerStateReady
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

// respondToSigterm keeps serving while /health reports 503 so load balancers drain the
// instance, then stops accepting connections and waits for in-flight requests.
func (h *HTTP) respondToSigterm() {
	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server gracefully")
	}
}
