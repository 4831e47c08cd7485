package web

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// ErrSessionLimit is returned when the registry is full.
var ErrSessionLimit = errors.New("web: session limit reached")

const defaultQueueSize = 64

// Session is one browser connection. It implements engine.Sink by queueing
// frames for the writer goroutine. Send never blocks the game loop.
type Session struct {
	id     string
	player string

	outbound chan ServerMessage
	done     chan struct{}
	doneOnce sync.Once

	// dropped is set when a frame was discarded; the next flush sends the
	// whole board so the client can resync.
	dropped atomic.Bool
}

var _ engine.Sink = (*Session)(nil)

// NewSession creates a session with an outbound buffer of queueSize frames.
func NewSession(id, player string, queueSize int) *Session {
	if queueSize < 1 {
		queueSize = defaultQueueSize
	}
	return &Session{
		id:       id,
		player:   player,
		outbound: make(chan ServerMessage, queueSize),
		done:     make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Player returns the display name assigned to the session.
func (s *Session) Player() string {
	return s.player
}

// Send queues a frame. If the buffer is full the oldest frame is dropped.
func (s *Session) Send(msg ServerMessage) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.outbound <- msg:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-s.outbound:
		s.dropped.Store(true)
	default:
	}
	select {
	case s.outbound <- msg:
	default:
		s.dropped.Store(true)
	}
}

// Outbound returns the queue drained by the writer.
func (s *Session) Outbound() <-chan ServerMessage {
	return s.outbound
}

// Done returns a channel that closes when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. Safe to call multiple times.
func (s *Session) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// takeDropped reports and resets the dropped flag.
func (s *Session) takeDropped() bool {
	return s.dropped.Swap(false)
}

func (s *Session) CellsChanged(changes []engine.CellChange) {
	s.Send(cellsMessage(changes))
}

func (s *Session) ScoreChanged(score, highScore int) {
	s.Send(scoreMessage(score, highScore))
}

func (s *Session) StatusChanged(status engine.Status) {
	s.Send(statusMessage(status))
}

// Registry tracks live sessions. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	max      int
	sessions map[string]*Session
}

// NewRegistry creates a registry holding at most max sessions. A
// non-positive max means no limit.
func NewRegistry(max int) *Registry {
	return &Registry{
		max:      max,
		sessions: make(map[string]*Session),
	}
}

// Add registers a session, failing with ErrSessionLimit when full.
func (r *Registry) Add(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.sessions) >= r.max {
		return ErrSessionLimit
	}
	r.sessions[s.ID()] = s
	return nil
}

// Remove unregisters a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll ends every live session.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Close()
	}
}
