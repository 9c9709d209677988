package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
)

var _ cartapp.SessionStore = (*SessionStore)(nil)

// SessionStore keeps cart sessions in process memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*cartapp.Session
	now      func() time.Time
}

// NewSessionStore constructs an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]*cartapp.Session{},
		now:      time.Now,
	}
}

// WithClock overrides the clock used to judge idleness.
func (s *SessionStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *SessionStore) Put(session *cartapp.Session) {
	if session == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

func (s *SessionStore) Get(id string) (*cartapp.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Delete(id string) (*cartapp.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return session, ok
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PurgeIdle closes and removes sessions unused for longer than ttl.
func (s *SessionStore) PurgeIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	var expired []*cartapp.Session

	s.mu.Lock()
	for id, session := range s.sessions {
		if session.LastSeen().Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
	return len(expired)
}

// CloseAll closes every session, used on shutdown.
func (s *SessionStore) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = map[string]*cartapp.Session{}
	s.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
}

// RunJanitor purges idle sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, ttl, interval time.Duration, logger *slog.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PurgeIdle(ttl); n > 0 && logger != nil {
				logger.InfoContext(ctx, "purged idle cart sessions", slog.Int("count", n))
			}
		}
	}
}
