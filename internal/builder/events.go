package builder

// EventType names a state transition.
type EventType string

const (
	// EventStarted is published when a run begins at step 0.
	EventStarted EventType = "started"
	// EventStep is published when the highlight moves to the next step.
	EventStep EventType = "step"
	// EventGenerated is published when the last step elapses and the snippet is set.
	EventGenerated EventType = "generated"
	// EventReveal is published for every revealed character.
	EventReveal EventType = "reveal"
	// EventDone is published when the snippet is fully revealed.
	EventDone EventType = "done"
)

// Event is one transition together with the state right after it.
type Event struct {
	Type  EventType
	State State
	// Delta is the character revealed by an EventReveal.
	Delta string
}

// Subscription delivers a session's events in order. C is closed when the
// subscription is cancelled, when the session closes, or when the subscriber
// fell too far behind; in the last case the consumer should subscribe again
// to resynchronise from a fresh snapshot.
type Subscription struct {
	C <-chan Event

	id      uint64
	session *Session
}

// Close cancels the subscription. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.session.unsubscribe(sub.id)
}
