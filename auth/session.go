package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"tiketi/models"
)

// Fixed keys under which the session is persisted.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Session is the process-wide auth state: the signed in user and the
// bearer token attached to outgoing calls.
type Session struct {
	User  *models.User
	Token string
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Storage persists the session under the fixed token/user keys.
// Implementations: CookieStorage for browser-backed requests,
// MemStorage for tests and headless callers.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear()
}

// Load reads a session out of storage. A missing or corrupt user
// record yields an unauthenticated session.
func Load(st Storage) Session {
	token, ok := st.Get(TokenKey)
	if !ok || token == "" {
		return Session{}
	}
	encoded, ok := st.Get(UserKey)
	if !ok {
		return Session{}
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Session{}
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return Session{}
	}
	return Session{User: &user, Token: token}
}

// Save persists the session. Call after login and register.
func Save(st Storage, s Session) {
	raw, err := json.Marshal(s.User)
	if err != nil {
		return
	}
	st.Set(TokenKey, s.Token)
	st.Set(UserKey, base64.StdEncoding.EncodeToString(raw))
}

// MemStorage is an in-memory Storage for tests.
type MemStorage struct {
	values map[string]string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

func (m *MemStorage) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MemStorage) Set(key, value string) {
	m.values[key] = value
}

func (m *MemStorage) Clear() {
	m.values = make(map[string]string)
}

// CookieStorage persists the session in request cookies, the closest
// server-side analog of browser-local storage.
type CookieStorage struct {
	r *http.Request
	w http.ResponseWriter
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{r: r, w: w}
}

func (c *CookieStorage) Get(key string) (string, bool) {
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

func (c *CookieStorage) Set(key, value string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieStorage) Clear() {
	for _, key := range []string{TokenKey, UserKey} {
		http.SetCookie(c.w, &http.Cookie{
			Name:     key,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
