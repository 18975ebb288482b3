package sse

import "testing"

func TestNewSnapshotEvent(t *testing.T) {
	event := NewSnapshotEvent(3, "an app", true, 2, "", false, "<div></div>")

	if event.Type != string(EventSnapshot) {
		t.Errorf("Type = %q, want %q", event.Type, EventSnapshot)
	}
	if event.Epoch != 3 || event.Step != 2 || !event.Generating {
		t.Errorf("unexpected run fields: %+v", event)
	}
	if event.Prompt != "an app" {
		t.Errorf("Prompt = %q, want %q", event.Prompt, "an app")
	}
	if event.StepsHTML != "<div></div>" {
		t.Errorf("StepsHTML = %q", event.StepsHTML)
	}
}

func TestNewStepsEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventType BuilderEventType
	}{
		{"started", EventStarted},
		{"step", EventStep},
		{"generated", EventGenerated},
		{"done", EventDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewStepsEvent(tt.eventType, 1, true, 0, false, "")
			if event.Type != string(tt.eventType) {
				t.Errorf("Type = %q, want %q", event.Type, tt.eventType)
			}
		})
	}
}

func TestNewRevealEvent(t *testing.T) {
	event := NewRevealEvent(4, "é", 12)

	if event.Type != string(EventReveal) {
		t.Errorf("Type = %q, want %q", event.Type, EventReveal)
	}
	if event.Char != "é" || event.Length != 12 || event.Epoch != 4 {
		t.Errorf("unexpected fields: %+v", event)
	}
}
