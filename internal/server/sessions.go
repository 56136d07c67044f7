package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/praveenr14083/studygen/internal/content"
)

const (
	cookieName   = "studygen-session"
	sessionIDKey = "sid"
	sessionTTL   = 24 * time.Hour
)

// SessionKey returns the cookie signing key for secret, or a random key when
// secret is empty. Cookies signed with a random key stop validating after a
// restart.
func SessionKey(secret string) []byte {
	if secret != "" {
		return []byte(secret)
	}
	return securecookie.GenerateRandomKey(32)
}

type sessionEntry struct {
	mu       sync.Mutex
	sess     *content.Session
	lastSeen time.Time
}

// sessionStore maps the id carried in the signed cookie to the in-memory
// content.Session. Handlers hold entry.mu for the whole request, so calls
// on one session are serialized.
type sessionStore struct {
	cookies *sessions.CookieStore

	mu      sync.Mutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

func newSessionStore(key []byte) *sessionStore {
	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionStore{
		cookies: cookies,
		entries: make(map[string]*sessionEntry),
		now:     time.Now,
	}
}

// acquire returns the caller's session entry, locked. A request without a
// valid cookie, or whose session has expired, gets a fresh session and a
// new cookie. The caller must unlock the entry.
func (st *sessionStore) acquire(w http.ResponseWriter, r *http.Request) (*sessionEntry, error) {
	// A cookie signed with another key yields a new empty session and an error.
	cs, _ := st.cookies.Get(r, cookieName)

	id, _ := cs.Values[sessionIDKey].(string)

	st.mu.Lock()
	now := st.now()
	entry, ok := st.entries[id]
	if !ok {
		st.pruneLocked(now)
		entry = &sessionEntry{sess: content.NewSession()}
		id = entry.sess.ID.String()
		st.entries[id] = entry
	}
	entry.lastSeen = now
	st.mu.Unlock()

	if !ok {
		cs.Values[sessionIDKey] = id
		if err := cs.Save(r, w); err != nil {
			return nil, err
		}
	}

	entry.mu.Lock()
	return entry, nil
}

func (st *sessionStore) pruneLocked(now time.Time) {
	for id, e := range st.entries {
		if now.Sub(e.lastSeen) > sessionTTL {
			delete(st.entries, id)
		}
	}
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}
