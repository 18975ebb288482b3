package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	labels := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		labels = append(labels, step.Label)
	}
	assert.Equal(t, []string{
		"Generating UI components...",
		"Creating database schema...",
		"Writing application logic...",
		"Optimizing & finalizing...",
	}, labels)
	assert.Equal(t, 5500*time.Millisecond, s.StepsDuration())
	assert.Equal(t, 12*time.Millisecond, s.Cadence)
	assert.Equal(t, "generated-app.tsx", s.Filename)
	assert.True(t, strings.HasPrefix(s.Snippet, "// Generated App Component\n"))
	assert.True(t, strings.HasSuffix(s.Snippet, "}"))
}

func TestExamplePrompt(t *testing.T) {
	s := Default()
	tests := []struct {
		label string
		want  string
	}{
		{"Task Manager", "Build me a task manager with modern UI, user accounts, and a database"},
		{"E-commerce", "Build me a e-commerce with modern UI, user accounts, and a database"},
		{"Chat App", "Build me a chat app with modern UI, user accounts, and a database"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ExamplePrompt(tt.label))
		})
	}
}

func TestLookupExample(t *testing.T) {
	s := Default()

	got, err := s.LookupExample("chat app")
	require.NoError(t, err)
	assert.Equal(t, "Chat App", got)

	_, err = s.LookupExample("Blog")
	assert.ErrorIs(t, err, ErrUnknownExample)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Script)
		want   error
	}{
		{"no steps", func(s *Script) { s.Steps = nil }, ErrNoSteps},
		{"blank label", func(s *Script) { s.Steps[1].Label = "  " }, ErrEmptyLabel},
		{"zero duration", func(s *Script) { s.Steps[2].Duration = 0 }, ErrBadDuration},
		{"empty snippet", func(s *Script) { s.Snippet = "" }, ErrEmptySnippet},
		{"zero cadence", func(s *Script) { s.Cadence = 0 }, ErrBadCadence},
		{"template without label", func(s *Script) { s.PromptTemplate = "Build me something" }, ErrBadTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}

func TestParse_OverridesOnlyGivenFields(t *testing.T) {
	s, err := Parse([]byte(`
cadence: 5ms
steps:
  - label: Thinking...
    icon: sparkles
    duration: 250ms
`))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Millisecond, s.Cadence)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, Step{Label: "Thinking...", Icon: "sparkles", Duration: 250 * time.Millisecond}, s.Steps[0])
	assert.Equal(t, DefaultSnippet, s.Snippet)
	assert.Equal(t, Default().Examples, s.Examples)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("steps: []\n"))
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = Parse([]byte("steps: [oops"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snippet: |\n  hello\nfilename: hello.txt\n"), 0o644))

	s, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", s.Snippet)
	assert.Equal(t, "hello.txt", s.Filename)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	require.NoError(t, err)

	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestScaled(t *testing.T) {
	base := Default()
	fast := base.Scaled(100)

	assert.Equal(t, 15*time.Millisecond, fast.Steps[0].Duration)
	assert.Equal(t, 12*time.Millisecond, fast.Steps[1].Duration)
	assert.Equal(t, time.Millisecond, fast.Cadence, "cadence is clamped to 1ms")
	assert.Equal(t, 1500*time.Millisecond, base.Steps[0].Duration, "original is untouched")

	same := base.Scaled(0)
	assert.Equal(t, base, same)
}

func TestRevealDuration(t *testing.T) {
	s := Default()
	s.Snippet = "héllo"
	s.Cadence = 10 * time.Millisecond
	assert.Equal(t, 50*time.Millisecond, s.RevealDuration())
}
