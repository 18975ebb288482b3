// Package script defines the scripted sequence a builder session plays: the
// ordered steps, the snippet revealed afterwards and the example prompts.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// LabelPlaceholder is replaced by the lowercased example label in PromptTemplate.
const LabelPlaceholder = "{label}"

var (
	ErrNoSteps        = errors.New("script has no steps")
	ErrEmptyLabel     = errors.New("step label is empty")
	ErrBadDuration    = errors.New("step duration must be positive")
	ErrEmptySnippet   = errors.New("snippet is empty")
	ErrBadCadence     = errors.New("reveal cadence must be positive")
	ErrBadTemplate    = errors.New("prompt template must contain " + LabelPlaceholder)
	ErrUnknownExample = errors.New("unknown example")
)

// Step is one entry of the scripted sequence.
type Step struct {
	Label    string        `yaml:"label" json:"label"`
	Icon     string        `yaml:"icon" json:"icon"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Script is the full configuration of a builder run.
type Script struct {
	Steps          []Step        `yaml:"steps"`
	Snippet        string        `yaml:"snippet"`
	Filename       string        `yaml:"filename"`
	Cadence        time.Duration `yaml:"cadence"`
	Examples       []string      `yaml:"examples"`
	PromptTemplate string        `yaml:"prompt_template"`
}

// Default returns the built-in script.
func Default() *Script {
	return &Script{
		Steps: []Step{
			{Label: "Generating UI components...", Icon: "layout", Duration: 1500 * time.Millisecond},
			{Label: "Creating database schema...", Icon: "database", Duration: 1200 * time.Millisecond},
			{Label: "Writing application logic...", Icon: "code", Duration: 1800 * time.Millisecond},
			{Label: "Optimizing & finalizing...", Icon: "sparkles", Duration: 1000 * time.Millisecond},
		},
		Snippet:        DefaultSnippet,
		Filename:       "generated-app.tsx",
		Cadence:        12 * time.Millisecond,
		Examples:       []string{"Task Manager", "E-commerce", "Chat App"},
		PromptTemplate: "Build me a " + LabelPlaceholder + " with modern UI, user accounts, and a database",
	}
}

// Parse decodes YAML over the default script, so a file only needs the
// fields it changes, and validates the result.
func Parse(data []byte) (*Script, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a script file. An empty path yields the default script.
func Load(path string) (*Script, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the invariants the sequencer relies on.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	for i, step := range s.Steps {
		if strings.TrimSpace(step.Label) == "" {
			return fmt.Errorf("step %d: %w", i, ErrEmptyLabel)
		}
		if step.Duration <= 0 {
			return fmt.Errorf("step %d (%s): %w", i, step.Label, ErrBadDuration)
		}
	}
	if s.Snippet == "" {
		return ErrEmptySnippet
	}
	if s.Cadence <= 0 {
		return ErrBadCadence
	}
	if !strings.Contains(s.PromptTemplate, LabelPlaceholder) {
		return ErrBadTemplate
	}
	return nil
}

// ExamplePrompt renders the prompt template for an example label.
func (s *Script) ExamplePrompt(label string) string {
	return strings.ReplaceAll(s.PromptTemplate, LabelPlaceholder, strings.ToLower(label))
}

// LookupExample finds a configured example label, ignoring case.
func (s *Script) LookupExample(label string) (string, error) {
	for _, ex := range s.Examples {
		if strings.EqualFold(ex, label) {
			return ex, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExample, label)
}

// StepsDuration is the time from the start of a run to the snippet being set.
func (s *Script) StepsDuration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		total += step.Duration
	}
	return total
}

// RevealDuration is the time the typewriter needs for the whole snippet.
func (s *Script) RevealDuration() time.Duration {
	return time.Duration(utf8.RuneCountInString(s.Snippet)) * s.Cadence
}

// Scaled returns a copy with every duration divided by factor. Durations
// never drop below one millisecond. Non-positive factors return an
// unchanged copy.
func (s *Script) Scaled(factor float64) *Script {
	out := *s
	out.Steps = append([]Step(nil), s.Steps...)
	out.Examples = append([]string(nil), s.Examples...)
	if factor <= 0 {
		return &out
	}

	scale := func(d time.Duration) time.Duration {
		scaled := time.Duration(float64(d) / factor)
		if scaled < time.Millisecond {
			return time.Millisecond
		}
		return scaled
	}
	for i := range out.Steps {
		out.Steps[i].Duration = scale(out.Steps[i].Duration)
	}
	out.Cadence = scale(out.Cadence)
	return &out
}

// Encode renders the script as YAML.
func (s *Script) Encode() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}
	return data, nil
}
