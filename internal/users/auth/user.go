// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer: registration, login and
logout, plus the identity lookups the Authentication Gate depends on.

# Architecture

Entities defined here carry no storage concerns. The [UserRepository]
interface is the only way the package touches persistence, which keeps the
service and the gate testable with an in-memory fake.
*/
package auth

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/accounts/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the only representation of a [User] sent to clients.
type PublicUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Public returns the client-safe view of the user.
func (user *User) Public() PublicUser {
	return PublicUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}

// Principal returns the authenticated-principal view of the user.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}

// PublicUsers maps a slice of users to their client-safe views.
func PublicUsers(users []*User) []PublicUser {
	views := make([]PublicUser, 0, len(users))
	for _, user := range users {
		views = append(views, user.Public())
	}
	return views
}

// # Normalization

// NormalizeEmail trims, NFC-normalizes and lower-cases an email address so
// that lookups and the unique index agree on one spelling.
func NormalizeEmail(email string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(email)))
}

// NormalizeUsername trims and NFC-normalizes a display name.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

// # Field Identifiers

// Field names for validation and identity mapping.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// # Limits

const (
	// MaxUsernameLength bounds display names in characters.
	MaxUsernameLength = 100

	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// # Messages

const (
	MessageUserExists         = "User already exists"
	MessageInvalidCredentials = "Invalid email or password"
	MessageLoggedOut          = "Logged out successfully"
	MessagePasswordTooLong    = "Maximum 72 bytes"
)
