// Package session holds the client's belief about who is signed in. The
// Session is the only process-wide mutable state: it is written exclusively
// by the Service here and read by every controller to gate rendering.
package session

import (
	"context"
	"log"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

// State is the session lifecycle tag. The only transitions are
// Unknown -> {Authenticated, Anonymous} after the startup status probe,
// Anonymous -> Authenticated on login, and Authenticated -> Anonymous on
// logout.
type State int

const (
	Unknown State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session is the current authenticated identity, or none.
type Session struct {
	state State
	user  models.User
}

func (s *Session) State() State { return s.state }

func (s *Session) LoggedIn() bool { return s.state == Authenticated }

// User returns the signed-in identity; the zero User when not authenticated.
func (s *Session) User() models.User { return s.user }

func (s *Session) Role() models.Role { return s.user.Role }

// AuthAPI is the slice of the API client the auth service needs.
type AuthAPI interface {
	Status(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
}

// Service drives the session state machine.
type Service struct {
	api     AuthAPI
	session *Session
}

func NewService(api AuthAPI) *Service {
	return &Service{api: api, session: &Session{}}
}

// Session returns the shared session value. Callers must treat it as
// read-only.
func (s *Service) Session() *Session {
	return s.session
}

// CheckStatus probes the server on startup. Any failure, whether network
// trouble or an unauthenticated answer, resolves to Anonymous; it is
// "not logged in", never a fatal error.
func (s *Service) CheckStatus(ctx context.Context) {
	user, err := s.api.Status(ctx)
	if err != nil {
		log.Printf("Auth status check failed: %v", err)
	}
	if err != nil || user == nil {
		s.session.state = Anonymous
		s.session.user = models.User{}
		return
	}
	s.session.state = Authenticated
	s.session.user = *user
}

// Login exchanges credentials for a session. On failure the returned error
// carries the server's message and the session is left untouched.
func (s *Service) Login(ctx context.Context, username, password string) error {
	user, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.session.state = Authenticated
	s.session.user = *user
	return nil
}

// Logout notifies the server best-effort and then unconditionally clears the
// local session, so the client never believes it is signed in after the user
// asked to leave.
func (s *Service) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		log.Printf("Logout request failed: %v", err)
	}
	s.session.state = Anonymous
	s.session.user = models.User{}
}
