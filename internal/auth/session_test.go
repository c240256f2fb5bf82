package auth

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T, ttl time.Duration) *SessionStore {
	t.Helper()
	s := NewSessionStore(ttl)
	t.Cleanup(s.Close)
	return s
}

func TestSession_CreateAndGet(t *testing.T) {
	store := newTestStore(t, time.Minute)

	token := store.Create("user-1")
	if token == "" {
		t.Fatal("Create() returned an empty token")
	}

	userID, ok := store.Get(token)
	if !ok {
		t.Fatal("Get() did not find a freshly created session")
	}
	if userID != "user-1" {
		t.Errorf("Get() userID = %q, want %q", userID, "user-1")
	}
}

func TestSession_TokensAreUnique(t *testing.T) {
	store := newTestStore(t, time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := store.Create("user-1")
		if seen[token] {
			t.Fatalf("duplicate session token issued: %s", token)
		}
		seen[token] = true
	}
}

func TestSession_UnknownToken(t *testing.T) {
	store := newTestStore(t, time.Minute)

	if _, ok := store.Get("no-such-token"); ok {
		t.Error("Get() resolved a token that was never issued")
	}
}

func TestSession_Expiry(t *testing.T) {
	store := newTestStore(t, time.Millisecond)

	token := store.Create("user-1")
	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Get(token); ok {
		t.Error("Get() resolved an expired session")
	}
	// Lazy expiry removes the entry as a side effect of the failed Get.
	if store.Len() != 0 {
		t.Errorf("store still holds %d sessions after expired Get", store.Len())
	}
}

func TestSession_DestroyIsIdempotent(t *testing.T) {
	store := newTestStore(t, time.Minute)

	token := store.Create("user-1")
	store.Destroy(token)

	if _, ok := store.Get(token); ok {
		t.Error("Get() resolved a destroyed session")
	}

	// Second destroy of the same token must be a harmless no-op.
	store.Destroy(token)
	store.Destroy("never-existed")
}

func TestSession_PurgeExpired(t *testing.T) {
	store := newTestStore(t, time.Millisecond)

	store.Create("a")
	store.Create("b")
	time.Sleep(5 * time.Millisecond)

	store.purgeExpired()
	if store.Len() != 0 {
		t.Errorf("purgeExpired left %d sessions, want 0", store.Len())
	}
}

func TestSession_DefaultTTL(t *testing.T) {
	store := newTestStore(t, 0)
	if store.TTL() != DefaultSessionTTL {
		t.Errorf("TTL() = %v, want %v", store.TTL(), DefaultSessionTTL)
	}
}
