// Package models defines client-side data models used by the resume analyzer
// client: the authenticated session, analysis history records and the
// presentation view of an analysis payload.
package models

// User is the identity returned by the login and register endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Session is the authenticated identity and credential held by the client.
//
// A session restored from durable storage carries a token but no user until
// the next successful authentication.
type Session struct {
	Token string
	User  *User
}

// Authenticated reports whether a bearer token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Username returns the known user name or "" for a restored session.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// AuthMode selects the authentication endpoint.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// Valid reports whether m is a known mode.
func (m AuthMode) Valid() bool {
	return m == AuthLogin || m == AuthRegister
}

// Credentials are the form values submitted to login or register.
// Email is only sent by register. Password should be wiped by the caller
// once the request has been issued.
type Credentials struct {
	Username string
	Email    string
	Password []byte
}
