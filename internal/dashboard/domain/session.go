package domain

import (
	"errors"
	"time"
)

// Token is an opaque bearer credential issued by the control plane. Empty means "no token".
type Token string

func (t Token) IsEmpty() bool {
	return t == ""
}

type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var ErrInvalidCredentials = errors.New("username and password are required")

func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrInvalidCredentials
	}

	return nil
}

// LoginResult is what a successful login commits to the session.
type LoginResult struct {
	Token     Token
	ExpiresIn time.Duration
	User      User
}
