package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

func TestPlayPlain(t *testing.T) {
	sc := script.Default().Scaled(1000)
	sc.Snippet = "ok"
	sess := builder.NewSession("plain", sc, builder.Options{})
	t.Cleanup(sess.Close)
	sess.SetPrompt("a todo app")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, PlayPlain(ctx, &out, sess, sess.Generate))

	assert.Equal(t, "▸ Generating UI components...\n"+
		"▸ Creating database schema...\n"+
		"▸ Writing application logic...\n"+
		"▸ Optimizing & finalizing...\n"+
		"\n── generated-app.tsx ──\n"+
		"ok\n", out.String())
}

func TestPlayPlain_NotStarted(t *testing.T) {
	sess := builder.NewSession("plain", script.Default(), builder.Options{})
	t.Cleanup(sess.Close)

	err := PlayPlain(context.Background(), &bytes.Buffer{}, sess, sess.Generate)
	assert.Error(t, err)
	assert.Equal(t, 0, sess.Subscribers())
}

func TestPlayPlain_Cancelled(t *testing.T) {
	clock := schedule.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	sess := builder.NewSession("plain", script.Default(), builder.Options{Clock: clock})
	t.Cleanup(sess.Close)
	sess.SetPrompt("a todo app")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := PlayPlain(ctx, &out, sess, sess.Generate)
	// The started frame may be written before the cancellation is seen.
	assert.ErrorIs(t, err, context.Canceled)
}
