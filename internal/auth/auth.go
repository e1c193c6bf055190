// Package auth covers password hashing and login sessions.
package auth

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfredjeanlab/gazette/internal/model"
)

// SessionDuration is how long a session stays valid after login.
const SessionDuration = 24 * time.Hour

// tokenAlphabet is the character set for session tokens.
const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// tokenLength is the number of random characters in a session token.
const tokenLength = 32

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewToken returns a fresh URL-safe session token.
func NewToken() (string, error) {
	token, err := nanoid.Generate(tokenAlphabet, tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// NewSession builds a session for the given user, valid from now for
// SessionDuration.
func NewSession(userID int64, now time.Time) (*model.Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	return &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}, nil
}
