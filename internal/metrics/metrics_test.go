package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

var _ builder.Observer = (*Recorder)(nil)

func TestRecorder_TracksSessionRun(t *testing.T) {
	openedBefore := testutil.ToFloat64(SessionsOpened)
	activeBefore := testutil.ToFloat64(SessionsActive)
	startedBefore := testutil.ToFloat64(GenerationsStarted.WithLabelValues("false"))
	busyBefore := testutil.ToFloat64(GenerationsIgnored.WithLabelValues("busy"))
	completedBefore := testutil.ToFloat64(GenerationsCompleted)

	clock := schedule.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	sess := builder.NewSession("metrics", script.Default(), builder.Options{
		Clock:    clock,
		Observer: NewRecorder(),
	})

	assert.Equal(t, openedBefore+1, testutil.ToFloat64(SessionsOpened))
	assert.Equal(t, activeBefore+1, testutil.ToFloat64(SessionsActive))

	sess.SetPrompt("a chat app")
	require.True(t, sess.Generate())
	require.False(t, sess.Generate())
	clock.Advance(time.Minute)

	assert.Equal(t, startedBefore+1, testutil.ToFloat64(GenerationsStarted.WithLabelValues("false")))
	assert.Equal(t, busyBefore+1, testutil.ToFloat64(GenerationsIgnored.WithLabelValues("busy")))
	assert.Equal(t, completedBefore+1, testutil.ToFloat64(GenerationsCompleted))

	sess.Close()
	assert.Equal(t, activeBefore, testutil.ToFloat64(SessionsActive))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	Throttled("generate")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `landing_builder_requests_throttled_total{action="generate"}`)
}
