// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, the
// session cookie) from the domain logic. The pieces are constructed once at
// startup from the configuration and injected into services and middleware.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Every failure rejects the token as a whole.
var (
	ErrTokenMalformed        = errors.New("sec: token is malformed")
	ErrTokenExpired          = errors.New("sec: token has expired")
	ErrTokenSignatureInvalid = errors.New("sec: token signature is invalid")
)

// SessionClaims represents the payload embedded inside a session token.
//
// Only the identity id is carried. Everything else about the user is
// resolved from storage on each request, so profile changes and deletions
// take effect immediately.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
}

// TokenCodec issues and verifies HS256-signed session tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec creates a codec bound to a symmetric signing secret.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	return &TokenCodec{secret: []byte(secret), now: time.Now}, nil
}

// Issue creates a signed token for userID that expires after timeToLive.
func (codec *TokenCodec) Issue(userID string, timeToLive time.Duration) (string, error) {
	currentTime := codec.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// identity id it carries.
//
// The returned error is one of [ErrTokenMalformed], [ErrTokenExpired] or
// [ErrTokenSignatureInvalid].
func (codec *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &SessionClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return codec.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "", ErrTokenMalformed
	default:
		return "", ErrTokenSignatureInvalid
	}

	if claims.UserID == "" {
		return "", ErrTokenMalformed
	}

	return claims.UserID, nil
}
