package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store/persist"
	"stonepay_admin/pkg/logger"
)

const (
	sessionNamespace = "session"
	sessionVersion   = 1
)

// Identity is the cached signed-in operator.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (i Identity) DisplayName() string {
	if i.FirstName != "" || i.LastName != "" {
		return (i.FirstName + " " + i.LastName)
	}
	return i.Email
}

type sessionState struct {
	Token     string    `json:"token"`
	ConsoleID string    `json:"console_id"`
	User      *Identity `json:"user,omitempty"`
}

// Session holds the bearer credential and the operator identity, persisted in
// their own namespace. It is the only place the credential lives.
type Session struct {
	mu        sync.RWMutex
	state     sessionState
	persister persist.Persister
	log       logger.Logger
	now       func() time.Time
	hooks     []func()
}

func NewSession(persister persist.Persister, log logger.Logger) *Session {
	return &Session{persister: persister, log: log, now: time.Now}
}

// Restore loads a previously persisted session. A missing or outdated record
// leaves the session signed out.
func (s *Session) Restore(ctx context.Context) error {
	rec, err := s.persister.Load(ctx, sessionNamespace)
	if errors.Is(err, persist.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.Version != sessionVersion {
		s.log.Log("Discarding session persisted with version %d", rec.Version)
		return s.persister.Delete(ctx, sessionNamespace)
	}
	var st sessionState
	if err := json.Unmarshal(rec.Payload, &st); err != nil {
		s.log.Error("Discarding unreadable session: %v", err)
		return s.persister.Delete(ctx, sessionNamespace)
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Establish stores a fresh credential. user may be nil, in which case the
// identity is taken from the token claims.
func (s *Session) Establish(ctx context.Context, token string, user *models.User) (string, error) {
	ident := &Identity{}
	if claims, err := ParseClaims(token); err == nil {
		ident.ID = claims.Subject()
		ident.Email = claims.Email
		ident.Role = claims.Role
	}
	if user != nil {
		ident.ID = user.ID
		ident.Email = user.Email
		ident.FirstName = user.FirstName
		ident.LastName = user.LastName
		ident.Role = user.Role
	}

	st := sessionState{Token: token, ConsoleID: uuid.NewString(), User: ident}
	payload, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	if err := s.persister.Save(ctx, sessionNamespace, persist.Record{Version: sessionVersion, Payload: payload}); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return st.ConsoleID, nil
}

// Expire clears the credential and the cached identity, then runs the
// registered hooks. It is safe to call on an already cleared session.
func (s *Session) Expire(ctx context.Context) {
	s.mu.Lock()
	wasSignedIn := s.state.Token != ""
	s.state = sessionState{}
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()

	if err := s.persister.Delete(ctx, sessionNamespace); err != nil {
		s.log.Error("Failed to delete persisted session: %v", err)
	}
	if wasSignedIn {
		s.log.Log("Your session has expired. Please log in again.")
	}
	for _, hook := range hooks {
		hook()
	}
}

// OnExpire registers fn to run after every Expire.
func (s *Session) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// ConsoleID identifies the browser that signed in; the console gates pages on it.
func (s *Session) ConsoleID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ConsoleID
}

func (s *Session) User() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// LocallyExpired reports whether the stored token's own exp claim has passed.
func (s *Session) LocallyExpired() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return false
	}
	return claims.ExpiredAt(s.now())
}

// Authorize attaches the bearer credential when one is present.
func (s *Session) Authorize(request *http.Request) {
	if token := s.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}
