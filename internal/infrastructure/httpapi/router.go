package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"

	"fixbridge/internal/application/port/input"
	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type fixHandler struct {
	fix    input.FixExecutor
	logger output.LoggerPort
}

// NewRouter serves POST /fix and GET /healthz. Every origin is allowed so a
// page-injected UI can call it directly.
func NewRouter(fix input.FixExecutor, logger output.LoggerPort) http.Handler {
	h := &fixHandler{
		fix:    fix,
		logger: logger.WithField("component", "httpapi"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(httplog.NewLogger("fixbridge", httplog.Options{
		JSON:    true,
		Concise: true,
	})))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Post("/fix", h.handleFix)

	return r
}

func (h *fixHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *fixHandler) handleFix(w http.ResponseWriter, r *http.Request) {
	var req entity.FixRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, entity.NewInvalidRequest("fix.decode", "malformed JSON body: %v", err))
		return
	}

	result, err := h.fix.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *fixHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())

	if errors.Is(err, entity.ErrInvalidRequest) {
		h.logger.Warn("Rejected fix request", "error", err, "request_id", reqID)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   string(entity.KindInvalidRequest),
			Message: err.Error(),
		})
		return
	}

	h.logger.Error("Fix request failed", "error", err, "request_id", reqID)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "internal",
		Message: fmt.Sprintf("fix failed: %v", err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
