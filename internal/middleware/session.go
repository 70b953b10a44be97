package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"

	"social-service/internal/auth"
)

const (
	sessionName        = "social_session"
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// SessionManager keeps the logged-in account in a signed cookie.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(key string, maxAge int, secure bool) *SessionManager {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// Start records p in the session cookie.
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, p auth.Principal) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionUserIDKey] = p.ID
	session.Values[sessionUsernameKey] = p.Username
	return session.Save(r, w)
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Principal reads the account from the session cookie, if one is present and valid.
func (m *SessionManager) Principal(r *http.Request) (auth.Principal, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil || session.IsNew {
		return auth.Principal{}, false
	}
	id, ok := session.Values[sessionUserIDKey].(int)
	if !ok || id == 0 {
		return auth.Principal{}, false
	}
	username, _ := session.Values[sessionUsernameKey].(string)
	return auth.Principal{ID: id, Username: username}, true
}
