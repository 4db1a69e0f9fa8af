// Package auth implements the client session: login, registration, logout,
// and the current user derived from the stored token.
//
// The token is trusted as-is. Its signature and expiry are never checked on
// the client; the backend rejects stale tokens with 401 and the api
// pipeline clears the session in response.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/elducche/mddcli/internal/client/api"
	"github.com/elducche/mddcli/internal/client/session"
	"github.com/elducche/mddcli/internal/logging"
)

// DefaultLoginError is reported when the backend answers without a token or message.
const DefaultLoginError = "Erreur de connexion"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// LoginError is returned when the backend accepted the request but issued no token.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// Backend is the transport the session service talks through.
type Backend interface {
	Post(ctx context.Context, path string, in, out any) error
	Text(ctx context.Context, method, path string, in any) (string, error)
}

type Service struct {
	backend Backend
	store   session.Store
	log     logging.Logger
}

func NewService(backend Backend, store session.Store, log logging.Logger) *Service {
	return &Service{backend: backend, store: store, log: log}
}

// Login posts the credentials and stores the returned token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := s.backend.Post(ctx, api.PathLogin, creds, &resp); err != nil {
		return nil, err
	}

	if resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = DefaultLoginError
		}
		return nil, &LoginError{Message: msg}
	}

	if err := s.store.Save(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	s.log.Info(ctx, "logged in", "email", creds.Email)
	return &resp, nil
}

// Register creates an account. The backend's success payload is returned as-is.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	return s.backend.Text(ctx, http.MethodPost, api.PathRegister, req)
}

// Logout clears the stored token. It makes no network call.
func (s *Service) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
		return
	}
	s.log.Debug(ctx, "session cleared")
}

// Token reads the store on every call. Any stored value, even an empty one,
// is a session. Read failures count as no token.
func (s *Service) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read session", "error", err)
		return "", false
	}
	return token, ok
}

func (s *Service) IsLoggedIn(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// LoginState is IsLoggedIn with store failures reported instead of hidden.
func (s *Service) LoginState(ctx context.Context) (bool, error) {
	_, ok, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	return ok, nil
}

// CurrentUser decodes the stored token. It returns nil when there is no
// token or the token cannot be decoded.
func (s *Service) CurrentUser(ctx context.Context) *CurrentUser {
	token, ok := s.Token(ctx)
	if !ok {
		return nil
	}

	c, err := decodeClaims(token)
	if err != nil {
		s.log.Warn(ctx, "failed to decode token", "error", err)
		return nil
	}

	return &CurrentUser{UserID: c.UserID, Username: c.Username, Email: c.Subject}
}

// CurrentUserID reports false when there is no user or the id is zero.
func (s *Service) CurrentUserID(ctx context.Context) (int64, bool) {
	u := s.CurrentUser(ctx)
	if u == nil || u.UserID == 0 {
		return 0, false
	}
	return u.UserID, true
}
