package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

func newTestModel(t *testing.T, exitOnDone bool) (*Model, *builder.Session, *schedule.Manual) {
	t.Helper()
	sc := script.Default()
	sc.Snippet = "ok"

	clock := schedule.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	sess := builder.NewSession("tui", sc, builder.Options{Clock: clock})
	t.Cleanup(sess.Close)

	sess.SetPrompt("a todo app")
	return New(sess, exitOnDone), sess, clock
}

// pump feeds queued session events into the model until none are left or the
// model quits, and reports whether it quit.
func pump(t *testing.T, m *Model) bool {
	t.Helper()
	for {
		select {
		case ev, ok := <-m.sub.C:
			if !ok {
				return false
			}
			_, cmd := m.Update(eventMsg(ev))
			if isQuit(cmd) {
				return true
			}
		default:
			return false
		}
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_PlaysRun(t *testing.T) {
	m, sess, clock := newTestModel(t, false)
	assert.Contains(t, m.View(), "a todo app")

	require.True(t, sess.Generate())
	pump(t, m)
	assert.Equal(t, 0, m.State().Step)
	view := m.View()
	assert.Contains(t, view, "Generating UI components...")
	assert.Contains(t, view, "○ Creating database schema...")

	clock.Advance(1500 * time.Millisecond)
	pump(t, m)
	assert.Contains(t, m.View(), "✓ Generating UI components...")

	clock.Advance(4 * time.Second)
	pump(t, m)
	assert.Equal(t, "", m.State().Displayed)
	assert.Contains(t, m.View(), "generated-app.tsx")

	clock.Advance(24 * time.Millisecond)
	pump(t, m)
	assert.False(t, m.State().Generating)
	assert.Equal(t, "ok", m.State().Displayed)
	assert.NotContains(t, m.View(), "Generating UI components...")
	assert.Contains(t, m.View(), "ok|")
}

func TestModel_ExitOnDone(t *testing.T) {
	m, sess, clock := newTestModel(t, true)

	require.True(t, sess.Generate())
	clock.Advance(6 * time.Second)
	assert.True(t, pump(t, m))
	assert.Equal(t, "ok", m.State().Displayed)
	assert.Equal(t, 0, sess.Subscribers())
	assert.NotContains(t, m.View(), "|")
}

func TestModel_Keys(t *testing.T) {
	m, sess, clock := newTestModel(t, false)
	require.True(t, sess.Generate())
	clock.Advance(2 * time.Second)
	epoch := sess.Snapshot().Epoch

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)
	assert.Equal(t, epoch+1, sess.Snapshot().Epoch)
	assert.Equal(t, 0, sess.Snapshot().Step)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, isQuit(cmd))
	assert.Equal(t, 0, sess.Subscribers())
}

func TestModel_ResubscribesWhenDropped(t *testing.T) {
	m, sess, _ := newTestModel(t, false)
	m.sub.Close()

	_, cmd := m.Update(streamClosedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, sess.Subscribers())

	sess.Close()
	_, cmd = m.Update(streamClosedMsg{})
	assert.True(t, isQuit(cmd))
}

func TestModel_SpinnerTicks(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	_, cmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, cmd)
	_, ok := m.spinner.Tick().(spinner.TickMsg)
	assert.True(t, ok)
}
