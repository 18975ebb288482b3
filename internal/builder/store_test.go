package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

func newTestStore(cfg StoreConfig) (*Store, *schedule.Manual, *recordingObserver) {
	clock := schedule.NewManual(start)
	obs := &recordingObserver{}
	return NewStore(cfg, script.Default(), clock, obs, nil), clock, obs
}

func TestStore_CreateGetRemove(t *testing.T) {
	st, _, obs := newTestStore(StoreConfig{})
	defer st.Close()

	sess := st.Create()
	require.NotEmpty(t, sess.ID())
	assert.Equal(t, 1, st.Len())

	got, ok := st.Get(sess.ID())
	require.True(t, ok)
	assert.Same(t, sess, got)

	assert.True(t, st.Remove(sess.ID()))
	assert.False(t, st.Remove(sess.ID()))
	assert.True(t, sess.Closed())

	_, ok = st.Get(sess.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, obs.opened)
	assert.Equal(t, 1, obs.closed)
}

func TestStore_EvictsLeastRecentlyActive(t *testing.T) {
	st, clock, _ := newTestStore(StoreConfig{MaxSessions: 2})
	defer st.Close()

	first := st.Create()
	clock.Advance(time.Second)
	second := st.Create()
	clock.Advance(time.Second)

	// Touching the first makes the second the oldest.
	_, ok := st.Get(first.ID())
	require.True(t, ok)
	clock.Advance(time.Second)

	third := st.Create()
	assert.Equal(t, 2, st.Len())
	assert.True(t, second.Closed())

	_, ok = st.Get(second.ID())
	assert.False(t, ok)
	_, ok = st.Get(first.ID())
	assert.True(t, ok)
	_, ok = st.Get(third.ID())
	assert.True(t, ok)
}

func TestStore_OnEvictReceivesEvictedID(t *testing.T) {
	st, clock, _ := newTestStore(StoreConfig{MaxSessions: 1})
	defer st.Close()

	var evicted []string
	st.OnEvict(func(id string) {
		evicted = append(evicted, id)
	})

	first := st.Create()
	clock.Advance(time.Second)
	second := st.Create()

	assert.Equal(t, []string{first.ID()}, evicted)
	assert.True(t, first.Closed())

	// Removal and sweeping are reported by their callers, not by the hook.
	assert.True(t, st.Remove(second.ID()))
	assert.Equal(t, []string{first.ID()}, evicted)
}

func TestStore_Sweep(t *testing.T) {
	st, clock, _ := newTestStore(StoreConfig{TTL: time.Minute})
	defer st.Close()

	idle := st.Create()
	watched := st.Create()
	_, sub := watched.Subscribe()
	defer sub.Close()

	clock.Advance(30 * time.Second)
	fresh := st.Create()

	clock.Advance(45 * time.Second)
	removed := st.Sweep()

	assert.Equal(t, []string{idle.ID()}, removed)
	assert.True(t, idle.Closed())
	assert.False(t, watched.Closed(), "sessions with subscribers are kept")
	assert.False(t, fresh.Closed())
	assert.Equal(t, 2, st.Len())
}

func TestStore_SweepDisabled(t *testing.T) {
	st, clock, _ := newTestStore(StoreConfig{})
	defer st.Close()

	st.Create()
	clock.Advance(24 * time.Hour)
	assert.Empty(t, st.Sweep())
	assert.Equal(t, 1, st.Len())
}

func TestStore_CloseStopsRuns(t *testing.T) {
	st, clock, _ := newTestStore(StoreConfig{})

	sess := st.Create()
	sess.SetPrompt("an app")
	require.True(t, sess.Generate())
	require.Equal(t, 1, clock.Pending())

	st.Close()
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 0, clock.Pending())
	assert.True(t, sess.Closed())
}
