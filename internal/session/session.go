package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/model"
)

var (
	ErrNoSession    = errors.New("session: not logged in")
	ErrForbidden    = errors.New("session: access to another member's data")
	ErrInvalidToken = errors.New("session: malformed access token")
)

// Session is the per-browser state of the storefront: the logged-in member,
// their tokens and one list view per vertical. It is handed to handlers
// explicitly by the session middleware.
type Session struct {
	ID        string
	CreatedAt time.Time

	Products *listing.View[model.Product]
	Concerts *listing.View[model.Concert]

	mu           sync.RWMutex
	user         *model.User
	accessToken  string
	refreshToken string
	checkedID    string
}

// SignIn stores the result of a successful login.
func (s *Session) SignIn(res model.LoginResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := res.User
	s.user = &u
	s.accessToken = res.AccessToken
	s.refreshToken = res.RefreshToken
}

// SignOut forgets the member and returns the refresh token that should be
// revoked upstream.
func (s *Session) SignOut() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	refresh := s.refreshToken
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	return refresh
}

// User returns a copy of the logged-in member, or nil.
func (s *Session) User() *model.User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AccessToken returns the bearer token of the logged-in member.
func (s *Session) AccessToken() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// LoggedIn reports whether the session carries an access token.
func (s *Session) LoggedIn() bool {
	return s.AccessToken() != ""
}

// MarkIDChecked records that userID passed the duplicate check. Any later
// change of the ID field has to be checked again.
func (s *Session) MarkIDChecked(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkedID = userID
}

// IDChecked reports whether userID is the last ID that passed the duplicate
// check.
func (s *Session) IDChecked(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return userID != "" && s.checkedID == userID
}

// TokenUserID reads the userId claim of an access token. The signature is
// not checked here; the storefront API verifies every token it receives.
func TokenUserID(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Authorize checks that the session belongs to userID.
func Authorize(s *Session, userID string) error {
	token := s.AccessToken()
	if token == "" {
		return ErrNoSession
	}
	tokenUser, err := TokenUserID(token)
	if err != nil {
		return err
	}
	if tokenUser != userID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeAdmin checks that the session belongs to an administrator.
func AuthorizeAdmin(s *Session) error {
	u := s.User()
	if u == nil || s.AccessToken() == "" {
		return ErrNoSession
	}
	if !u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
