// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"
	"time"

	"github.com/taibuivan/accounts/internal/platform/constants"
)

// # Session Transport

const (
	// SessionCookieName is the name of the cookie that carries the session token.
	SessionCookieName = "jwt"

	// SessionCookiePath scopes the cookie to the whole site.
	SessionCookiePath = "/"
)

// SessionCookie binds session tokens to HTTP responses and reads them back
// from requests.
type SessionCookie struct {
	secure bool
	maxAge time.Duration
}

// NewSessionCookie creates a transport. secure should be true everywhere but
// local development; maxAge should match the token time-to-live and falls
// back to [constants.DefaultSessionTTL] when not positive.
func NewSessionCookie(secure bool, maxAge time.Duration) *SessionCookie {
	if maxAge <= 0 {
		maxAge = constants.DefaultSessionTTL
	}
	return &SessionCookie{secure: secure, maxAge: maxAge}
}

// Attach sets the session cookie on the response.
func (transport *SessionCookie) Attach(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     SessionCookiePath,
		MaxAge:   int(transport.maxAge / time.Second),
		Expires:  time.Now().Add(transport.maxAge),
		Secure:   transport.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Extract reads the session token from the request.
// The second result is false when no session cookie was presented.
func (transport *SessionCookie) Extract(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear overwrites the session cookie with an empty, already expired value.
func (transport *SessionCookie) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     SessionCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   transport.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
