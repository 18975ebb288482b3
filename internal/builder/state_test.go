package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Phase(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Phase
	}{
		{"never started", IdleState(), PhaseIdle},
		{"stepping", State{Generating: true, Step: 2}, PhaseGenerating},
		{"revealing", State{Generating: true, Step: 3, Generated: "x"}, PhaseRevealing},
		{"finished", State{Step: 3, Generated: "x", Displayed: "x"}, PhaseIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Phase())
		})
	}
}

func TestState_CanGenerate(t *testing.T) {
	assert.False(t, State{}.CanGenerate())
	assert.False(t, State{Prompt: " \n\t"}.CanGenerate())
	assert.False(t, State{Prompt: "an app", Generating: true}.CanGenerate())
	assert.True(t, State{Prompt: "an app"}.CanGenerate())
}

func TestState_Visibility(t *testing.T) {
	assert.False(t, IdleState().ShowSteps())
	assert.False(t, IdleState().ShowOutput())

	stepping := State{Generating: true, Step: 0}
	assert.True(t, stepping.ShowSteps())
	assert.False(t, stepping.ShowOutput())

	revealing := State{Generating: true, Step: 3, Generated: "abc"}
	assert.True(t, revealing.ShowSteps())
	assert.True(t, revealing.ShowOutput())

	finished := State{Step: 3, Generated: "abc", Displayed: "abc"}
	assert.False(t, finished.ShowSteps())
	assert.True(t, finished.ShowOutput())
}

func TestState_StepStatus(t *testing.T) {
	stepping := State{Generating: true, Step: 1}
	assert.Equal(t, []StepStatus{StepDone, StepActive, StepPending, StepPending}, statuses(stepping, 4))

	revealing := State{Generating: true, Step: 3, Generated: "abc"}
	assert.Equal(t, []StepStatus{StepDone, StepDone, StepDone, StepActive}, statuses(revealing, 4))

	assert.Equal(t, []StepStatus{StepPending, StepPending, StepPending, StepPending}, statuses(IdleState(), 4))
}

func statuses(s State, n int) []StepStatus {
	out := make([]StepStatus, n)
	for i := range out {
		out[i] = s.StepStatus(i)
	}
	return out
}
