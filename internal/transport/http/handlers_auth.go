package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"session-server/internal/auth/models"
	"session-server/internal/platform/middleware"
	pkgerrors "session-server/pkg/errors"
)

// AuthService is the slice of the auth service the handler depends on.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, currentKey string) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest, currentKey string) (*models.AuthResult, error)
	Logout(ctx context.Context, caller models.Caller) (clearCookie bool, err error)
	Profile(ctx context.Context, caller models.Caller) (*models.Profile, error)
	Check(ctx context.Context, caller models.Caller) models.CheckResult
}

// AuthHandler is the thin HTTP layer over the auth service. It owns cookie
// handling and JSON envelopes; business logic stays in the service.
type AuthHandler struct {
	auth    AuthService
	cookies CookieConfig
	logger  *slog.Logger
}

func NewAuthHandler(auth AuthService, cookies CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, logger: logger}
}

// Register mounts the auth routes.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.Get("/auth/profile", h.handleProfile)
	r.Get("/auth/check", h.handleCheck)
}

// authResponse is the success envelope for register and login. Cookie carries
// the raw session key for bearer-mode clients.
type authResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
	Cookie  string            `json:"cookie"`
}

func caller(r *http.Request) models.Caller {
	return models.Caller{
		CookieKey:     callerCookieKey(r),
		Authorization: r.Header.Get("Authorization"),
	}
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "Invalid request body"))
		return
	}

	res, err := h.auth.Register(ctx, req, callerCookieKey(r))
	if err != nil {
		h.logAuthFailure(ctx, "register", err)
		writeError(w, err)
		return
	}

	h.cookies.SetSessionCookie(w, res.SessionKey)
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "Register successful",
		User:    res.User,
		Cookie:  res.SessionKey,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "Invalid request body"))
		return
	}

	res, err := h.auth.Login(ctx, req, callerCookieKey(r))
	if err != nil {
		h.logAuthFailure(ctx, "login", err)
		writeError(w, err)
		return
	}

	h.cookies.SetSessionCookie(w, res.SessionKey)
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		User:    res.User,
		Cookie:  res.SessionKey,
	})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearCookie, err := h.auth.Logout(r.Context(), caller(r))
	if err != nil {
		h.logAuthFailure(r.Context(), "logout", err)
		writeError(w, err)
		return
	}
	if clearCookie {
		h.cookies.ClearSessionCookie(w)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.Profile(r.Context(), caller(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) handleCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.auth.Check(r.Context(), caller(r)))
}

// logAuthFailure records dependency failures; client-caused outcomes are
// logged by the service where the detail lives.
func (h *AuthHandler) logAuthFailure(ctx context.Context, op string, err error) {
	if pkgerrors.Is(err, pkgerrors.CodeInternal) {
		h.logger.ErrorContext(ctx, op+" failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}
