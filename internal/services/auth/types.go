package auth

import (
	"errors"
	"time"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrRefreshNotFound    = errors.New("refresh token not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

type SessionRecord struct {
	SID       string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type AccessClaims struct {
	UserID    string
	SID       string
	Email     string
	ExpiresAt time.Time
}

type Me struct {
	ID              string
	Email           string
	DisplayName     string
	EmailVerified   bool
	ProfileComplete bool
}

type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	AccessExpires time.Time
	Me            Me
}

// Credentials pairs the public user record with its stored password hash.
type Credentials struct {
	User         model.User
	PasswordHash string
}
