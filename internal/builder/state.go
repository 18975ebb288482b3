// Package builder runs builder sessions: the scripted sequence that highlights
// each step for its duration and then reveals the snippet one character at a
// time, streaming every transition to subscribers.
package builder

import "strings"

// Phase is the coarse position of a session in its state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseRevealing  Phase = "revealing"
)

// StepStatus is how a step chip is drawn for a given state.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepActive  StepStatus = "active"
	StepDone    StepStatus = "done"
)

// State is a snapshot of a session.
type State struct {
	Prompt     string `json:"prompt"`
	Generating bool   `json:"generating"`
	// Step is the highlighted step index, -1 before the first run.
	Step      int    `json:"step"`
	Generated string `json:"generated"`
	// Displayed is always a prefix of Generated.
	Displayed string `json:"displayed"`
	// Epoch counts generation starts; it identifies the run owning timers.
	Epoch uint64 `json:"epoch"`
}

// IdleState is the state of a session that has never run.
func IdleState() State {
	return State{Step: -1}
}

// Phase derives the state machine phase.
func (s State) Phase() Phase {
	switch {
	case !s.Generating:
		return PhaseIdle
	case s.Generated != "":
		return PhaseRevealing
	default:
		return PhaseGenerating
	}
}

// CanGenerate reports whether a generation may start: the prompt is not
// blank and no run is in progress.
func (s State) CanGenerate() bool {
	return strings.TrimSpace(s.Prompt) != "" && !s.Generating
}

// ShowSteps reports whether the step panel is visible.
func (s State) ShowSteps() bool {
	return s.Generating && s.Step >= 0
}

// ShowOutput reports whether the output pane is visible.
func (s State) ShowOutput() bool {
	return s.Displayed != "" || s.Generated != ""
}

// StepStatus returns the status of step i. The current step stays active
// through the reveal; earlier steps, and all steps once the snippet is set,
// are done.
func (s State) StepStatus(i int) StepStatus {
	switch {
	case i == s.Step:
		return StepActive
	case i < s.Step || s.Generated != "":
		return StepDone
	default:
		return StepPending
	}
}
