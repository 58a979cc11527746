package service

import (
	"context"
	"strings"

	"session-server/internal/auth/models"
)

// IdentitySource resolves a caller to an identity, or nil when the source
// cannot vouch for one. Two variants exist: CookieBound reads the
// transport-managed session cookie, BearerKeyed treats the Authorization
// header as a raw session-store key. Both resolve against the same store, so
// browser and programmatic clients share one identity system.
type IdentitySource interface {
	Resolve(ctx context.Context, c models.Caller) *models.Identity
}

// CookieBound resolves the session referenced by the caller's cookie. It
// returns an identity whenever a record exists; a record without a user id is
// an anonymous session and resolves with UserID zero.
type CookieBound struct {
	sessions SessionStore
}

func (s *CookieBound) Resolve(ctx context.Context, c models.Caller) *models.Identity {
	if c.CookieKey == "" {
		return nil
	}
	data, err := s.sessions.Get(ctx, c.CookieKey)
	if err != nil {
		// A failed or missing lookup is "unauthenticated", never an error.
		return nil
	}
	return &models.Identity{
		UserID:     data.UserID,
		Username:   data.Username,
		SessionKey: c.CookieKey,
		FromCookie: true,
	}
}

// BearerKeyed resolves the session whose key is carried in the Authorization
// header. It only vouches for records that carry a user id.
type BearerKeyed struct {
	sessions SessionStore
}

func (s *BearerKeyed) Resolve(ctx context.Context, c models.Caller) *models.Identity {
	key, ok := parseBearerKey(c.Authorization)
	if !ok {
		return nil
	}
	data, err := s.sessions.Get(ctx, key)
	if err != nil || data.UserID == 0 {
		return nil
	}
	return &models.Identity{
		UserID:     data.UserID,
		Username:   data.Username,
		SessionKey: key,
	}
}

// Resolver combines both identity sources with cookie priority: a cookie
// session carrying a user id wins; otherwise the bearer key is looked up.
// Usernames flow both ways across the sources: a winning cookie identity
// missing its username borrows it from a resolvable bearer record, and a
// cookie session without a user id still contributes its cached username to
// a bearer-resolved identity. The shared store has other writers, so records
// carrying only a user id are in-model.
type Resolver struct {
	cookie IdentitySource
	bearer IdentitySource
}

func NewResolver(sessions SessionStore) *Resolver {
	return &Resolver{
		cookie: &CookieBound{sessions: sessions},
		bearer: &BearerKeyed{sessions: sessions},
	}
}

// Resolve returns the caller's identity, or nil for "unauthenticated".
func (r *Resolver) Resolve(ctx context.Context, c models.Caller) *models.Identity {
	var anonymous *models.Identity
	if ident := r.cookie.Resolve(ctx, c); ident != nil {
		if ident.UserID != 0 {
			if ident.Username == "" {
				if bearer := r.bearer.Resolve(ctx, c); bearer != nil {
					ident.Username = bearer.Username
				}
			}
			return ident
		}
		anonymous = ident
	}
	ident := r.bearer.Resolve(ctx, c)
	if ident == nil {
		return nil
	}
	if anonymous != nil && anonymous.Username != "" {
		ident.Username = anonymous.Username
	}
	return ident
}

// parseBearerKey extracts a session key from an Authorization header. A
// leading Bearer scheme (case-insensitive, followed by whitespace) is
// stripped; a header without the scheme is used as the key verbatim. A
// header that is only the scheme carries no key.
func parseBearerKey(header string) (string, bool) {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return "", false
	}
	const scheme = "bearer"
	if strings.EqualFold(trimmed, scheme) {
		return "", false
	}
	if len(trimmed) > len(scheme) && strings.EqualFold(trimmed[:len(scheme)], scheme) {
		rest := trimmed[len(scheme):]
		if stripped := strings.TrimSpace(rest); stripped != rest && stripped != "" {
			return stripped, true
		}
	}
	return trimmed, true
}
