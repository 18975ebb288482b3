package builder

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

// StoreConfig bounds the session store.
type StoreConfig struct {
	// MaxSessions caps live sessions; 0 means unbounded.
	MaxSessions int
	// TTL is how long a session without subscribers may stay idle.
	TTL              time.Duration
	SubscriberBuffer int
}

// Store holds the live sessions keyed by id.
type Store struct {
	cfg    StoreConfig
	script *script.Script
	clock  schedule.Clock
	obs    Observer
	log    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	onEvict  []func(id string)
}

// NewStore creates an empty store whose sessions play sc.
func NewStore(cfg StoreConfig, sc *script.Script, clock schedule.Clock, obs Observer, log *slog.Logger) *Store {
	if clock == nil {
		clock = schedule.System()
	}
	if obs == nil {
		obs = NopObserver{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		cfg:      cfg,
		script:   sc,
		clock:    clock,
		obs:      obs,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Script returns the script new sessions play.
func (st *Store) Script() *script.Script {
	return st.script
}

// Create opens a new session. At capacity the least recently active session
// is closed to make room.
func (st *Store) Create() *Session {
	sess := NewSession(uuid.NewString(), st.script, Options{
		Clock:            st.clock,
		Observer:         st.obs,
		Logger:           st.log,
		SubscriberBuffer: st.cfg.SubscriberBuffer,
	})

	st.mu.Lock()
	var evicted *Session
	if st.cfg.MaxSessions > 0 && len(st.sessions) >= st.cfg.MaxSessions {
		evicted = st.oldestLocked()
		delete(st.sessions, evicted.ID())
	}
	st.sessions[sess.ID()] = sess
	hooks := st.onEvict
	st.mu.Unlock()

	if evicted != nil {
		evicted.Close()
		for _, fn := range hooks {
			fn(evicted.ID())
		}
		st.log.Info("session evicted", logger.Scope("builder.store"), slog.String("session", evicted.ID()))
	}
	return sess
}

// OnEvict registers fn to be called with the id of every session closed to
// make room at capacity. Hooks run after the session is closed, outside the
// store lock.
func (st *Store) OnEvict(fn func(id string)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onEvict = append(st.onEvict, fn)
}

// Get returns a live session and marks it active.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	st.mu.Unlock()

	if ok {
		sess.touch()
	}
	return sess, ok
}

// Remove closes and forgets a session. It reports whether the id was live.
func (st *Store) Remove(id string) bool {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		sess.Close()
	}
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep closes sessions that have no subscribers and have been idle longer
// than the TTL, returning their ids. A zero TTL disables sweeping.
func (st *Store) Sweep() []string {
	if st.cfg.TTL <= 0 {
		return nil
	}
	now := st.clock.Now()

	st.mu.Lock()
	var expired []*Session
	for id, sess := range st.sessions {
		if sess.Subscribers() > 0 || now.Sub(sess.LastActive()) <= st.cfg.TTL {
			continue
		}
		delete(st.sessions, id)
		expired = append(expired, sess)
	}
	st.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, sess := range expired {
		sess.Close()
		ids = append(ids, sess.ID())
	}
	return ids
}

// Close closes every session.
func (st *Store) Close() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

func (st *Store) oldestLocked() *Session {
	var oldest *Session
	var oldestAt time.Time
	for _, sess := range st.sessions {
		at := sess.LastActive()
		if oldest == nil || at.Before(oldestAt) {
			oldest, oldestAt = sess, at
		}
	}
	return oldest
}
