package builder

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

// DefaultSubscriberBuffer is the per-subscriber event queue length. It holds
// a whole default run, reveal included, without the reader keeping up.
const DefaultSubscriberBuffer = 1024

// Options configures a Session. Zero values select defaults.
type Options struct {
	Clock            schedule.Clock
	Observer         Observer
	Logger           *slog.Logger
	SubscriberBuffer int
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = schedule.System()
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.SubscriberBuffer <= 0 {
		o.SubscriberBuffer = DefaultSubscriberBuffer
	}
	return o
}

// Session is the in-memory state of one builder widget. All transitions,
// including timer callbacks, are serialized by mu. Timer callbacks carry the
// epoch of the run that scheduled them and do nothing once it is superseded.
type Session struct {
	id     string
	script *script.Script
	clock  schedule.Clock
	obs    Observer
	log    *slog.Logger
	bufLen int

	mu         sync.Mutex
	state      State
	snippet    []rune
	revealed   int
	startedAt  time.Time
	lastActive time.Time
	stepTask   schedule.Task
	revealTask schedule.Task
	subs       map[uint64]chan Event
	nextSub    uint64
	closed     bool
}

// NewSession creates an idle session playing sc.
func NewSession(id string, sc *script.Script, opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		id:         id,
		script:     sc,
		clock:      opts.Clock,
		obs:        opts.Observer,
		log:        opts.Logger.With(logger.Scope("builder"), slog.String("session", id)),
		bufLen:     opts.SubscriberBuffer,
		state:      IdleState(),
		lastActive: opts.Clock.Now(),
		subs:       make(map[uint64]chan Event),
	}
	s.obs.SessionOpened()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Script returns the script the session plays.
func (s *Session) Script() *script.Script {
	return s.script
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetPrompt replaces the prompt. It never affects a run in progress.
func (s *Session) SetPrompt(prompt string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked()
	if !s.closed {
		s.state.Prompt = prompt
	}
	return s.state
}

// UseExample fills the prompt from a configured example label and returns
// the new prompt.
func (s *Session) UseExample(label string) (string, error) {
	label, err := s.script.LookupExample(label)
	if err != nil {
		return "", err
	}
	prompt := s.script.ExamplePrompt(label)
	s.SetPrompt(prompt)
	return prompt, nil
}

// Generate starts a run when the prompt is not blank and no run is in
// progress, and reports whether it did. Otherwise it is a no-op.
func (s *Session) Generate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked()
	if reason, ok := s.refuseLocked(); ok {
		s.obs.GenerationIgnored(reason)
		return false
	}
	if s.state.Generating {
		s.obs.GenerationIgnored(IgnoredBusy)
		return false
	}
	s.startLocked()
	return true
}

// Restart starts a new run even while one is in progress, cancelling the
// pending step timer or reveal interval of the superseded run first. Only a
// blank prompt prevents it.
func (s *Session) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked()
	if reason, ok := s.refuseLocked(); ok {
		s.obs.GenerationIgnored(reason)
		return false
	}
	s.startLocked()
	return true
}

// Subscribe returns the current state and a subscription to every event
// after it. Subscribing to a closed session yields a closed channel.
func (s *Session) Subscribe() (State, *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked()
	s.nextSub++
	ch := make(chan Event, s.bufLen)
	sub := &Subscription{C: ch, id: s.nextSub, session: s}
	if s.closed {
		close(ch)
		return s.state, sub
	}
	s.subs[sub.id] = ch
	return s.state, sub
}

// Subscribers returns the number of live subscriptions.
func (s *Session) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// LastActive is the time of the last caller interaction.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close tears the session down: pending tasks are cancelled and all
// subscriptions closed. Later calls are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancelTasksLocked()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.obs.SessionClosed()
	s.log.Debug("session closed")
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) refuseLocked() (IgnoreReason, bool) {
	if s.closed {
		return IgnoredClosed, true
	}
	if strings.TrimSpace(s.state.Prompt) == "" {
		return IgnoredEmptyPrompt, true
	}
	return "", false
}

func (s *Session) startLocked() {
	superseded := s.state.Generating
	s.cancelTasksLocked()

	s.state.Epoch++
	s.state.Generating = true
	s.state.Step = 0
	s.state.Generated = ""
	s.state.Displayed = ""
	s.snippet = nil
	s.revealed = 0
	s.startedAt = s.clock.Now()

	s.obs.GenerationStarted(superseded)
	s.log.Debug("generation started",
		slog.Uint64("epoch", s.state.Epoch),
		slog.Bool("superseded", superseded),
	)
	s.publishLocked(Event{Type: EventStarted})
	s.scheduleStepLocked(0)
}

func (s *Session) scheduleStepLocked(i int) {
	epoch := s.state.Epoch
	s.stepTask = s.clock.AfterFunc(s.script.Steps[i].Duration, func() {
		s.stepElapsed(epoch, i)
	})
}

func (s *Session) stepElapsed(epoch uint64, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || epoch != s.state.Epoch || s.state.Phase() != PhaseGenerating || s.state.Step != i {
		return
	}
	s.stepTask = nil

	if i < len(s.script.Steps)-1 {
		s.state.Step = i + 1
		s.publishLocked(Event{Type: EventStep})
		s.scheduleStepLocked(i + 1)
		return
	}

	s.state.Generated = s.script.Snippet
	s.snippet = []rune(s.script.Snippet)
	s.publishLocked(Event{Type: EventGenerated})
	s.revealTask = s.clock.Every(s.script.Cadence, func() {
		s.revealTick(epoch)
	})
}

func (s *Session) revealTick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || epoch != s.state.Epoch || s.state.Phase() != PhaseRevealing || s.revealed >= len(s.snippet) {
		return
	}

	s.revealed++
	s.state.Displayed = string(s.snippet[:s.revealed])
	s.publishLocked(Event{Type: EventReveal, Delta: string(s.snippet[s.revealed-1])})

	if s.revealed < len(s.snippet) {
		return
	}

	s.revealTask.Cancel()
	s.revealTask = nil
	s.state.Generating = false

	elapsed := s.clock.Now().Sub(s.startedAt)
	s.obs.GenerationCompleted(elapsed)
	s.log.Debug("generation completed",
		slog.Uint64("epoch", s.state.Epoch),
		slog.Duration("elapsed", elapsed),
	)
	s.publishLocked(Event{Type: EventDone})
}

func (s *Session) cancelTasksLocked() {
	if s.stepTask != nil {
		s.stepTask.Cancel()
		s.stepTask = nil
	}
	if s.revealTask != nil {
		s.revealTask.Cancel()
		s.revealTask = nil
	}
}

// publishLocked never blocks: a subscriber whose queue is full is dropped
// rather than handed a stream with a gap in it.
func (s *Session) publishLocked(ev Event) {
	ev.State = s.state
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			delete(s.subs, id)
			close(ch)
			s.log.Warn("dropping slow subscriber", slog.Uint64("subscriber", id))
		}
	}
}

func (s *Session) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
}

func (s *Session) touchLocked() {
	s.lastActive = s.clock.Now()
}
