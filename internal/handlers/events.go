package handlers

import (
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/zerocode/landing/internal/apperror"
	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/components"
	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/script"
	"github.com/zerocode/landing/internal/sse"
)

// reconnectDelay is the retry hint sent to EventSource clients.
const reconnectDelay = 1000

// Events handles GET /api/sessions/{id}/events. The stream opens with a
// snapshot of the session and then carries every transition in order. It
// ends when the client goes away or the session closes; a client that was
// dropped for falling behind reconnects and gets a fresh snapshot.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	sw := sse.NewWriter(w)
	if !sw.CanFlush() {
		apperror.WriteJSON(w, h.log, apperror.ErrStreamingUnsupported)
		return
	}

	state, sub := s.Subscribe()
	defer sub.Close()

	if err := sw.Start(); err != nil {
		h.log.Error("failed to start event stream", logger.Error(err))
		return
	}
	defer sw.Close()

	log := h.log.With(slog.String("session", s.ID()))
	log.Debug("event stream opened")
	defer log.Debug("event stream closed")

	sc := s.Script()
	if err := sw.WriteRetry(reconnectDelay); err != nil {
		return
	}
	snapshot, err := snapshotFrame(sc, state)
	if err != nil {
		log.Error("failed to render snapshot", logger.Error(err))
		return
	}
	if err := sw.WriteEvent(string(sse.EventSnapshot), snapshot); err != nil {
		return
	}

	var keepAlive <-chan time.Time
	if h.keepAlive > 0 {
		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()
		keepAlive = ticker.C
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.stop:
			return
		case <-keepAlive:
			if err := sw.WriteComment("keep-alive"); err != nil {
				return
			}
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			name, frame, err := eventFrame(sc, ev)
			if err != nil {
				log.Error("failed to render event", logger.Error(err))
				return
			}
			if err := sw.WriteEvent(name, frame); err != nil {
				log.Debug("event stream write failed", logger.Error(err))
				return
			}
		}
	}
}

func snapshotFrame(sc *script.Script, st builder.State) (sse.SnapshotEvent, error) {
	steps, err := components.Render(components.StepsPanel(sc, st))
	if err != nil {
		return sse.SnapshotEvent{}, err
	}
	return sse.NewSnapshotEvent(st.Epoch, st.Prompt, st.Generating, st.Step, st.Displayed, st.ShowOutput(), steps), nil
}

// eventFrame maps a session event to a stream frame. Reveals carry only the
// new character; every other transition carries the re-rendered step panel.
func eventFrame(sc *script.Script, ev builder.Event) (string, any, error) {
	st := ev.State
	if ev.Type == builder.EventReveal {
		return string(sse.EventReveal), sse.NewRevealEvent(st.Epoch, ev.Delta, utf8.RuneCountInString(st.Displayed)), nil
	}

	steps, err := components.Render(components.StepsPanel(sc, st))
	if err != nil {
		return "", nil, err
	}
	eventType := sse.BuilderEventType(ev.Type)
	return string(eventType), sse.NewStepsEvent(eventType, st.Epoch, st.Generating, st.Step, st.ShowOutput(), steps), nil
}
