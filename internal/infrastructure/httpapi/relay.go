package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/infrastructure/host"
)

// RelaySession serves one connected UI until the connection ends or ctx is
// done.
type RelaySession func(ctx context.Context, h output.MessagingHost) error

// NewRelayRouter upgrades GET /relay to a websocket and hands it to session.
func NewRelayRouter(session RelaySession, logger output.LoggerPort) http.Handler {
	logger = logger.WithField("component", "relay-http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/relay", func(w http.ResponseWriter, r *http.Request) {
		ws, err := host.Upgrade(w, r, logger)
		if err != nil {
			logger.Warn("Relay upgrade failed", "error", err)
			return
		}
		defer ws.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go func() {
			select {
			case <-ws.Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		logger.Info("UI connected", "request_id", middleware.GetReqID(r.Context()))
		if err := session(ctx, ws); err != nil && ctx.Err() == nil {
			logger.Warn("Relay session ended", "error", err)
		}
		logger.Info("UI disconnected")
	})

	return r
}
