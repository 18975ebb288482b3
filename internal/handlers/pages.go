package handlers

import (
	"net/http"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/components"
	"github.com/zerocode/landing/internal/logger"
)

// LandingPage renders the page with an idle builder. The browser attaches a
// session once the page has loaded.
func (h *Handler) LandingPage(w http.ResponseWriter, r *http.Request) {
	page := components.LandingPage(h.store.Script(), builder.IdleState())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		h.log.Warn("failed to render landing page", logger.Error(err))
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
