package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/mediquiz/internal/models"
)

// Flash levels.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
	// Detail is optional preformatted text, e.g. a raw model response.
	Detail string
}

// Session is everything the server keeps for one browser.
type Session struct {
	ID     string
	Review *State

	mu       sync.Mutex
	outline  models.Outline
	flashes  []Flash
	lastSeen time.Time
}

// AddFlash queues a message for the next page.
func (s *Session) AddFlash(f Flash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, f)
}

// TakeFlashes returns and clears the queued messages.
func (s *Session) TakeFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

// SetOutline keeps the last generated summary for download.
func (s *Session) SetOutline(o models.Outline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outline = o
}

// Outline returns the last generated summary, or nil.
func (s *Session) Outline() models.Outline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outline
}

// Registry maps session ids to sessions. Sessions idle for longer than the
// TTL are dropped.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry. A ttl of zero keeps sessions forever.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id and marks it as used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(s, now) {
		delete(r.sessions, id)
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

// Create starts a new session with a random id.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
		}
	}
	s := &Session{ID: uuid.NewString(), Review: NewState(), lastSeen: now}
	r.sessions[s.ID] = s
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.lastSeen) > r.ttl
}
