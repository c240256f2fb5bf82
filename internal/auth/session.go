package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a session lives from creation: one week.
const DefaultSessionTTL = 7 * 24 * time.Hour

// janitorInterval is how often expired sessions are swept out.
const janitorInterval = time.Hour

// Session is the server-side state behind one logged-in client.
type Session struct {
	UserID    string
	ExpiresAt time.Time
}

// SessionStore holds sessions in memory, keyed by an opaque token that the
// client carries in an HttpOnly cookie.
//
// The token is a v4 UUID (crypto/rand backed) — unguessable and meaningless
// by itself; every request resolves it against this store, so destroying a
// session here revokes the client immediately. That is the point of
// server-side sessions over signed tokens: logout actually logs out.
//
// A session expires a fixed TTL after creation. Expiry is enforced lazily
// on Get and reaped in the background by a janitor goroutine; Close stops
// the janitor.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	done     chan struct{}
}

// NewSessionStore creates a store with the given TTL (DefaultSessionTTL if
// zero) and starts the expiry janitor.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// TTL returns the configured session lifetime. The login handler uses it
// for the cookie MaxAge so client and server expire together.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create establishes a new session for the user and returns its token.
func (s *SessionStore) Create(userID string) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = Session{
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token
}

// Get resolves a token to the owning user's ID. Returns ("", false) for an
// unknown or expired token; an expired session is removed on the spot.
func (s *SessionStore) Get(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(sess.ExpiresAt) {
		s.Destroy(token)
		return "", false
	}
	return sess.UserID, true
}

// Destroy removes a session. Destroying a token that doesn't exist is a
// no-op — logout stays idempotent.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len reports the number of live entries (expired-but-unswept included).
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the janitor goroutine. Safe to call once at shutdown.
func (s *SessionStore) Close() {
	close(s.done)
}

func (s *SessionStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *SessionStore) purgeExpired() {
	now := time.Now()
	s.mu.Lock()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}
