package models

import "time"

// User is the credential-store record. Password holds the bcrypt hash and is
// never serialized. Role exists in the schema but carries no authorization
// semantics here.
type User struct {
	ID        int64
	Username  string
	Email     string
	Phone     string
	Password  string
	CreatedAt time.Time
	Role      int
}

// PublicUser is the subset of User returned by register and login.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is the subset of User returned by the profile endpoint.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// SessionData is the payload stored under a session key. The session store
// owns the record; services only ever see it through get/save/destroy. A zero
// UserID means the record carries no identity.
type SessionData struct {
	UserID   int64  `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
}

// Caller carries the raw credentials the transport layer extracted from a
// request: the session-cookie value and the Authorization header, either of
// which may be empty.
type Caller struct {
	CookieKey     string
	Authorization string
}

// Identity is the transient result of session resolution. FromCookie records
// which source produced it; profile uses that to clean up stale cookie
// sessions.
type Identity struct {
	UserID     int64
	Username   string
	SessionKey string
	FromCookie bool
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login. SessionKey is the raw
// session-store key; cookie clients receive it as the session cookie and
// bearer clients replay it in the Authorization header.
type AuthResult struct {
	User       PublicUser
	SessionKey string
}

// CheckResult is the always-200 response of the check endpoint. UserID and
// Username are null when unauthenticated.
type CheckResult struct {
	Authenticated bool    `json:"authenticated"`
	UserID        *int64  `json:"userId"`
	Username      *string `json:"username"`
}
