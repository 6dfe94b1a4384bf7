// Package session provides cookie-backed login sessions. All per-user
// interaction state lives in the Session value, including the record
// staged for deletion, so handlers never share mutable globals.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"sync"
	"time"
)

const CookieName = "board_session"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the state attached to one logged-in browser.
type Session struct {
	Token     string
	User      string
	ExpiresAt time.Time

	// CheckedRecordID is the record the user marked for deletion.
	// Deleting requires checking first; zero means nothing is staged.
	CheckedRecordID int64
}

// Manager validates credentials and tracks active sessions in memory.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	users    map[string]string // name -> sha256 hex of the password
	ttl      time.Duration
}

func NewManager(users map[string]string, ttl time.Duration) *Manager {
	if users == nil {
		users = make(map[string]string)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		users:    users,
		ttl:      ttl,
	}
}

// Login checks the password against the stored sha256 digest and starts a
// session on success.
func (m *Manager) Login(user, password string) (*Session, error) {
	wantHash, ok := m.users[user]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	sum := sha256.Sum256([]byte(password))
	gotHash := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(gotHash), []byte(wantHash)) != 1 {
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	s := &Session{
		Token:     token,
		User:      user,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the live session for a token, pruning it when expired.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return nil, false
	}
	return s, true
}

func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// CheckRecord stages a record id for deletion confirmation.
func (m *Manager) CheckRecord(token string, id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return false
	}
	s.CheckedRecordID = id
	return true
}

// TakeCheckedRecord returns and clears the staged record id.
func (m *Manager) TakeCheckedRecord(token string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.CheckedRecordID == 0 {
		return 0, false
	}
	id := s.CheckedRecordID
	s.CheckedRecordID = 0
	return id, true
}

// FromRequest resolves the session attached to the request cookie.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return m.Get(cookie.Value)
}

// Cookie builds the session cookie for a login response.
func (s *Session) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie clears the session cookie on logout.
func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
