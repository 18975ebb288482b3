package sse

// BuilderEventType names a frame on a builder session stream.
type BuilderEventType string

const (
	// EventSnapshot is the first frame, carrying the complete session state.
	EventSnapshot BuilderEventType = "snapshot"

	// EventStarted is sent when a run begins at step 0.
	EventStarted BuilderEventType = "started"

	// EventStep is sent when the highlight moves to the next step.
	EventStep BuilderEventType = "step"

	// EventGenerated is sent when the snippet is set and the reveal begins.
	EventGenerated BuilderEventType = "generated"

	// EventReveal is sent for every revealed character.
	EventReveal BuilderEventType = "reveal"

	// EventDone is sent when the snippet is fully revealed.
	EventDone BuilderEventType = "done"
)

// SnapshotEvent carries everything a client needs to redraw the widget.
type SnapshotEvent struct {
	Type       string `json:"type"`
	Epoch      uint64 `json:"epoch"`
	Prompt     string `json:"prompt"`
	Generating bool   `json:"generating"`
	Step       int    `json:"step"`
	Displayed  string `json:"displayed"`
	ShowOutput bool   `json:"showOutput"`
	StepsHTML  string `json:"stepsHtml"`
}

// NewSnapshotEvent creates a new snapshot event.
func NewSnapshotEvent(epoch uint64, prompt string, generating bool, step int, displayed string, showOutput bool, stepsHTML string) SnapshotEvent {
	return SnapshotEvent{
		Type:       string(EventSnapshot),
		Epoch:      epoch,
		Prompt:     prompt,
		Generating: generating,
		Step:       step,
		Displayed:  displayed,
		ShowOutput: showOutput,
		StepsHTML:  stepsHTML,
	}
}

// StepsEvent is sent for started, step, generated and done transitions: the
// step panel is re-rendered on the server and replaced on the client.
type StepsEvent struct {
	Type       string `json:"type"`
	Epoch      uint64 `json:"epoch"`
	Generating bool   `json:"generating"`
	Step       int    `json:"step"`
	ShowOutput bool   `json:"showOutput"`
	StepsHTML  string `json:"stepsHtml"`
}

// NewStepsEvent creates a new steps event of the given type.
func NewStepsEvent(eventType BuilderEventType, epoch uint64, generating bool, step int, showOutput bool, stepsHTML string) StepsEvent {
	return StepsEvent{
		Type:       string(eventType),
		Epoch:      epoch,
		Generating: generating,
		Step:       step,
		ShowOutput: showOutput,
		StepsHTML:  stepsHTML,
	}
}

// RevealEvent appends one character to the output pane. Length is the
// displayed length after appending, letting clients detect a gap.
type RevealEvent struct {
	Type   string `json:"type"`
	Epoch  uint64 `json:"epoch"`
	Char   string `json:"char"`
	Length int    `json:"length"`
}

// NewRevealEvent creates a new reveal event.
func NewRevealEvent(epoch uint64, char string, length int) RevealEvent {
	return RevealEvent{
		Type:   string(EventReveal),
		Epoch:  epoch,
		Char:   char,
		Length: length,
	}
}
