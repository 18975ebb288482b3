package builder

import "time"

// IgnoreReason explains why a generation request did nothing.
type IgnoreReason string

const (
	IgnoredEmptyPrompt IgnoreReason = "empty_prompt"
	IgnoredBusy        IgnoreReason = "busy"
	IgnoredClosed      IgnoreReason = "closed"
)

// Observer receives session lifecycle notifications. Calls are made while
// the session lock is held and must not call back into the session.
type Observer interface {
	SessionOpened()
	SessionClosed()
	GenerationStarted(superseded bool)
	GenerationIgnored(reason IgnoreReason)
	GenerationCompleted(elapsed time.Duration)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) SessionOpened() {}
func (NopObserver) SessionClosed() {}
func (NopObserver) GenerationStarted(bool) {}
func (NopObserver) GenerationIgnored(IgnoreReason) {}
func (NopObserver) GenerationCompleted(time.Duration) {}
