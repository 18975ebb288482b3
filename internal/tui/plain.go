package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/zerocode/landing/internal/builder"
)

// PlayPlain writes a run to w as plain text, one line per step followed by
// the revealed snippet. It is used when the output is not a terminal. The
// run must be started after PlayPlain has subscribed, so callers pass start.
func PlayPlain(ctx context.Context, w io.Writer, session *builder.Session, start func() bool) error {
	_, sub := session.Subscribe()
	defer sub.Close()

	if !start() {
		return errors.New("run not started")
	}

	sc := session.Script()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-sub.C:
			if !ok {
				return errors.New("session closed before the run finished")
			}

			var err error
			switch ev.Type {
			case builder.EventStarted, builder.EventStep:
				_, err = fmt.Fprintf(w, "▸ %s\n", sc.Steps[ev.State.Step].Label)
			case builder.EventGenerated:
				_, err = fmt.Fprintf(w, "\n── %s ──\n", sc.Filename)
			case builder.EventReveal:
				_, err = io.WriteString(w, ev.Delta)
			case builder.EventDone:
				_, err = io.WriteString(w, "\n")
				if err == nil {
					return nil
				}
			}
			if err != nil {
				return err
			}
		}
	}
}
