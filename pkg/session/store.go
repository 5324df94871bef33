package session

import (
	"context"
	"errors"
	"sync"

	"creationity/internal/models"
	"creationity/internal/validation"
	"creationity/pkg/api"
)

// Result is the outcome of a session operation. Failures carry a message
// fit for direct display; they are expected states, not errors.
type Result struct {
	OK      bool
	Message string
}

func ok() Result                 { return Result{OK: true} }
func fail(message string) Result { return Result{OK: false, Message: message} }

// authAPI is the slice of the API client the store depends on.
type authAPI interface {
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in api.ProfileInput) (*models.User, error)
}

// Store holds the current session. A restored token is trusted until the
// server rejects it; the first rejected request invalidates the session.
type Store struct {
	client  authAPI
	storage Storage

	mu    sync.RWMutex
	token string
	user  *models.User
}

// NewStore creates a session store, restoring any persisted token.
// Wire the returned store into the API client with api.WithTokenSource and
// api.WithAuthFailureHandler(store.Invalidate); the client is then attached
// with SetClient.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	if token, err := storage.Load(); err == nil {
		s.token = token
	}
	return s
}

// SetClient attaches the API client used for auth operations.
func (s *Store) SetClient(client authAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held. The token may still be
// rejected by the server; that rejection invalidates the session.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser returns the logged-in account, or nil. After a restart it is
// nil until Refresh or a login populates it.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Signup validates the form locally and registers a new account. Local
// validation failures return without any request being made.
func (s *Store) Signup(ctx context.Context, username, email, password, confirmPassword string) Result {
	if err := validation.ValidateUsername(username); err != nil {
		return fail(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return fail(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fail(err.Error())
	}
	if confirmPassword != password {
		return fail("Passwords do not match")
	}

	resp, err := s.client.Signup(ctx, api.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fail(messageFor(err))
	}

	s.establish(resp)
	return ok()
}

// Login validates the form locally and exchanges credentials for a session.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	if email == "" || password == "" {
		return fail("Email and password are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return fail(err.Error())
	}

	resp, err := s.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fail(messageFor(err))
	}

	s.establish(resp)
	return ok()
}

// Logout ends the session and removes the persisted token. Calling it
// while logged out is a no-op.
func (s *Store) Logout() {
	s.Invalidate()
}

// Invalidate drops the session without contacting the server. It is
// registered as the API client's auth-failure handler and is idempotent.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" && s.user == nil {
		return
	}
	s.token = ""
	s.user = nil
	_ = s.storage.Clear()
}

// Refresh loads the account behind a restored token. An auth failure here
// invalidates the session through the client's failure hook.
func (s *Store) Refresh(ctx context.Context) Result {
	if !s.IsAuthenticated() {
		return fail("Not logged in")
	}
	user, err := s.client.Me(ctx)
	if err != nil {
		return fail(messageFor(err))
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return ok()
}

// UpdateProfile edits the account and refreshes the cached user on success.
func (s *Store) UpdateProfile(ctx context.Context, in api.ProfileInput) Result {
	if !s.IsAuthenticated() {
		return fail("Not logged in")
	}
	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return fail(err.Error())
		}
	}

	user, err := s.client.UpdateProfile(ctx, in)
	if err != nil {
		return fail(messageFor(err))
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return ok()
}

func (s *Store) establish(resp *api.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	_ = s.storage.Save(resp.Token)
}

// messageFor converts a client error into a user-facing message.
func messageFor(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var aerr *api.AuthError
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	var nerr *api.NotFoundError
	if errors.As(err, &nerr) {
		return nerr.Message
	}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the server. Check your connection and try again."
	}
	return "Something went wrong. Please try again."
}
