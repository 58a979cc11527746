// Package service orchestrates registration, login, logout, and
// authentication-status checks over the credential store and the shared
// session store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"session-server/internal/auth/models"
	"session-server/internal/platform/metrics"
	pkgerrors "session-server/pkg/errors"
	"session-server/pkg/sentinel"
)

// UserStore is the credential-store contract the service depends on.
// Implementations live under internal/auth/store/user.
type UserStore interface {
	FindByAny(ctx context.Context, username, email, phone string) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u models.User) (*models.User, error)
}

// SessionStore is the shared session-store contract. Get returns
// sentinel.ErrNotFound for absent records, Save rewrites the payload and
// refreshes the TTL, Destroy is idempotent.
type SessionStore interface {
	Get(ctx context.Context, key string) (*models.SessionData, error)
	Save(ctx context.Context, key string, data models.SessionData) error
	Destroy(ctx context.Context, key string) error
}

// Service holds the auth business logic. Stores are injected so tests run
// against in-memory implementations.
type Service struct {
	users    UserStore
	sessions SessionStore
	resolver *Resolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewService(users UserStore, sessions SessionStore, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		resolver: NewResolver(sessions),
		logger:   logger,
		metrics:  m,
	}
}

var (
	errInvalidCredentials = pkgerrors.New(pkgerrors.CodeUnauthenticated, "Invalid username or password")
	errRegistrationFailed = pkgerrors.New(pkgerrors.CodeInternal, "Registration failed. Please try again.")
	errLoginFailed        = pkgerrors.New(pkgerrors.CodeInternal, "Login failed. Please try again.")
	errLogoutFailed       = pkgerrors.New(pkgerrors.CodeInternal, "Logout failed. Please try again.")
	errProfileFailed      = pkgerrors.New(pkgerrors.CodeInternal, "Failed to load profile")
)

func validateRegistration(req models.RegisterRequest) []string {
	var msgs []string
	if len(strings.TrimSpace(req.Username)) < 3 {
		msgs = append(msgs, "Username must be at least 3 characters")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		msgs = append(msgs, "Valid email is required")
	}
	if len(req.Phone) < 10 {
		msgs = append(msgs, "Valid phone number is required")
	}
	if len(req.Password) < 8 {
		msgs = append(msgs, "Password must be at least 8 characters")
	}
	return msgs
}

// conflictMessage reports the first colliding field in the fixed priority
// order username > email > phone.
func conflictMessage(existing []models.User, req models.RegisterRequest) (string, bool) {
	for _, u := range existing {
		if u.Username == req.Username {
			return "Username already taken", true
		}
	}
	for _, u := range existing {
		if u.Email == req.Email {
			return "Email already taken", true
		}
	}
	for _, u := range existing {
		if u.Phone == req.Phone {
			return "Phone number already taken", true
		}
	}
	return "", false
}

// Register creates a user and establishes a session for it. currentKey is the
// caller's existing session-cookie key, if any; a cookieless registration
// mints a fresh key. The session write must complete before Register returns
// success.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest, currentKey string) (*models.AuthResult, error) {
	if msgs := validateRegistration(req); len(msgs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").WithDetails(msgs...)
	}

	existing, err := s.users.FindByAny(ctx, req.Username, req.Email, req.Phone)
	if err != nil {
		s.logger.ErrorContext(ctx, "register: uniqueness pre-check failed", "error", err)
		return nil, errRegistrationFailed
	}
	if msg, ok := conflictMessage(existing, req); ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.ErrorContext(ctx, "register: password hashing failed", "error", err)
		return nil, errRegistrationFailed
	}

	created, err := s.users.Create(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hash),
	})
	if errors.Is(err, sentinel.ErrConflict) {
		// Lost a race with a concurrent registration after the pre-check.
		// Same outcome as the pre-check, just without the field name.
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "User information already exists")
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "register: user insert failed", "error", err)
		return nil, errRegistrationFailed
	}

	key, err := s.establishSession(ctx, currentKey, created)
	if err != nil {
		s.logger.ErrorContext(ctx, "register: session persistence failed", "error", err, "user_id", created.ID)
		return nil, errRegistrationFailed
	}

	s.metrics.IncRegistrations()
	return &models.AuthResult{User: created.Public(), SessionKey: key}, nil
}

// Login verifies credentials and establishes a session. Unknown usernames and
// wrong passwords produce the identical error so neither is revealed.
func (s *Service) Login(ctx context.Context, req models.LoginRequest, currentKey string) (*models.AuthResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "Username and password are required")
	}

	u, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "login: user lookup failed", "error", err)
		return nil, errLoginFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	key, err := s.establishSession(ctx, currentKey, u)
	if err != nil {
		s.logger.ErrorContext(ctx, "login: session persistence failed", "error", err, "user_id", u.ID)
		return nil, errLoginFailed
	}

	s.metrics.IncLogins()
	return &models.AuthResult{User: u.Public(), SessionKey: key}, nil
}

// Logout destroys the caller's session. A bearer key destroys that exact
// store entry and leaves cookies alone; otherwise the cookie session is
// destroyed and the returned flag tells the transport to clear the cookie.
// Destroying a session that does not exist is still a success.
func (s *Service) Logout(ctx context.Context, caller models.Caller) (clearCookie bool, err error) {
	if key, ok := parseBearerKey(caller.Authorization); ok {
		if err := s.sessions.Destroy(ctx, key); err != nil {
			s.logger.ErrorContext(ctx, "logout: bearer session destroy failed", "error", err)
			return false, errLogoutFailed
		}
		s.metrics.IncSessionsDestroyed()
		return false, nil
	}

	if caller.CookieKey != "" {
		if err := s.sessions.Destroy(ctx, caller.CookieKey); err != nil {
			s.logger.ErrorContext(ctx, "logout: cookie session destroy failed", "error", err)
			return false, errLogoutFailed
		}
		s.metrics.IncSessionsDestroyed()
	}
	return true, nil
}

// Profile resolves the caller's identity and returns the backing user. When
// the user row is gone the stale cookie session is destroyed so subsequent
// requests resolve to unauthenticated.
func (s *Service) Profile(ctx context.Context, caller models.Caller) (*models.Profile, error) {
	ident := s.resolver.Resolve(ctx, caller)
	if ident == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "Not authenticated")
	}

	u, err := s.users.FindByID(ctx, ident.UserID)
	if errors.Is(err, sentinel.ErrNotFound) {
		if caller.CookieKey != "" {
			if derr := s.sessions.Destroy(ctx, caller.CookieKey); derr != nil {
				s.logger.WarnContext(ctx, "profile: stale session cleanup failed", "error", derr)
			} else {
				s.metrics.IncStaleSessionsHealed()
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "profile: user lookup failed", "error", err, "user_id", ident.UserID)
		return nil, errProfileFailed
	}

	p := u.Profile()
	return &p, nil
}

// Check reports authentication status. It never fails on an unauthenticated
// caller; the result carries explicit nulls instead.
func (s *Service) Check(ctx context.Context, caller models.Caller) models.CheckResult {
	ident := s.resolver.Resolve(ctx, caller)
	if ident == nil {
		return models.CheckResult{}
	}
	res := models.CheckResult{Authenticated: true, UserID: &ident.UserID}
	if ident.Username != "" {
		res.Username = &ident.Username
	}
	return res
}

// establishSession writes {userId, username} under the caller's existing
// session key, or a freshly minted one, refreshing the TTL either way. The
// write is sequenced after the user row is committed; a persistence failure
// propagates so the request never reports success with an unpersisted
// session.
func (s *Service) establishSession(ctx context.Context, currentKey string, u *models.User) (string, error) {
	key := currentKey
	if key == "" {
		var err error
		key, err = newSessionKey()
		if err != nil {
			return "", err
		}
	}
	if err := s.sessions.Save(ctx, key, models.SessionData{UserID: u.ID, Username: u.Username}); err != nil {
		return "", err
	}
	return key, nil
}
