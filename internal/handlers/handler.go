package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zerocode/landing/internal/apperror"
	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/config"
	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/metrics"
	"github.com/zerocode/landing/internal/ratelimit"
	"github.com/zerocode/landing/internal/script"
)

// Handler serves the landing page and the builder session API.
type Handler struct {
	store     *builder.Store
	limiter   *ratelimit.Limiter
	log       *slog.Logger
	keepAlive time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewHandler creates a new handler. Rate limit buckets of sessions the
// store evicts are dropped with them.
func NewHandler(store *builder.Store, limiter *ratelimit.Limiter, cfg *config.Config, log *slog.Logger) *Handler {
	store.OnEvict(limiter.Remove)
	return &Handler{
		store:     store,
		limiter:   limiter,
		log:       log.With(logger.Scope("handlers")),
		keepAlive: cfg.KeepAlive,
		stop:      make(chan struct{}),
	}
}

// Stop ends every open event stream. The server calls it when shutting down
// so that long-lived streams do not hold the shutdown up.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	ID     string        `json:"id"`
	Prompt string        `json:"prompt,omitempty"`
	State  builder.State `json:"state"`
}

// GenerateResponse reports whether a run was started. A blank prompt or a
// busy session is not an error: Started is simply false.
type GenerateResponse struct {
	Started bool          `json:"started"`
	State   builder.State `json:"state"`
}

// PromptRequest is the body of the prompt, generate and restart endpoints.
// For generate and restart the body and the prompt are optional.
type PromptRequest struct {
	Prompt *string `json:"prompt"`
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	writeJSON(w, http.StatusCreated, SessionResponse{ID: s.ID(), State: s.Snapshot()})
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{ID: s.ID(), State: s.Snapshot()})
}

// DeleteSession handles DELETE /api/sessions/{id}. It is what the page
// sends when it goes away.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.Remove(id) {
		apperror.WriteJSON(w, h.log, apperror.ErrSessionNotFound)
		return
	}
	h.limiter.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// SetPrompt handles PUT /api/sessions/{id}/prompt
func (h *Handler) SetPrompt(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req PromptRequest
	if err := decodeBody(r, &req); err != nil {
		apperror.WriteJSON(w, h.log, err)
		return
	}
	if req.Prompt == nil {
		apperror.WriteJSON(w, h.log, apperror.ErrBadRequest.WithMessage("prompt is required"))
		return
	}

	st := s.SetPrompt(*req.Prompt)
	writeJSON(w, http.StatusOK, SessionResponse{ID: s.ID(), State: st})
}

// ApplyExample handles POST /api/sessions/{id}/examples/{label}
func (h *Handler) ApplyExample(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	label := chi.URLParam(r, "label")
	if unescaped, err := url.PathUnescape(label); err == nil {
		label = unescaped
	}

	prompt, err := s.UseExample(label)
	if errors.Is(err, script.ErrUnknownExample) {
		apperror.WriteJSON(w, h.log, apperror.ErrExampleNotFound.WithInternal(err))
		return
	}
	if err != nil {
		apperror.WriteJSON(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{ID: s.ID(), Prompt: prompt, State: s.Snapshot()})
}

// Generate handles POST /api/sessions/{id}/generate. It is ignored while a
// run is in progress.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "generate", (*builder.Session).Generate)
}

// Restart handles POST /api/sessions/{id}/restart. It supersedes a run in
// progress.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "restart", (*builder.Session).Restart)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, action string, start func(*builder.Session) bool) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req PromptRequest
	if err := decodeBody(r, &req); err != nil {
		apperror.WriteJSON(w, h.log, err)
		return
	}

	if !h.limiter.Allow(s.ID()) {
		metrics.Throttled(action)
		h.log.Debug("request throttled",
			slog.String("session", s.ID()),
			slog.String("action", action),
		)
		apperror.WriteJSON(w, h.log, apperror.ErrRateLimited)
		return
	}

	if req.Prompt != nil {
		s.SetPrompt(*req.Prompt)
	}
	started := start(s)
	writeJSON(w, http.StatusOK, GenerateResponse{Started: started, State: s.Snapshot()})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*builder.Session, bool) {
	s, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		apperror.WriteJSON(w, h.log, apperror.ErrSessionNotFound)
		return nil, false
	}
	return s, true
}

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.ErrBadRequest.WithMessage("invalid JSON body").WithInternal(err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
