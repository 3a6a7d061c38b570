// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/respond"
	"github.com/taibuivan/accounts/internal/platform/sec"
)

// # Pipeline

// Stage is a single capability check run before a handler.
//
// A stage either returns the request to continue with (possibly carrying an
// enriched context) or an error that short-circuits the pipeline. The error is
// written by [respond.Error] and the handler never runs.
type Stage func(request *http.Request) (*http.Request, error)

// Pipeline runs stages in order in front of the wrapped handler.
//
// # Usage
//
//	router.With(middleware.Pipeline(authenticate, middleware.RequireAdmin())).Get("/", list)
func Pipeline(stages ...Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			for _, stage := range stages {
				enriched, err := stage(request)
				if err != nil {
					respond.Error(writer, request, err)
					return
				}
				request = enriched
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Authentication Gate

// TokenExtractor reads the raw session token from a request.
type TokenExtractor interface {
	Extract(request *http.Request) (string, bool)
}

// TokenVerifier decodes a session token into an identity id.
// [sec.TokenCodec] is the production implementation.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PrincipalResolver loads the current state of an identity.
//
// It must return an [apperr.AppError] with code NOT_FOUND when the identity
// no longer exists.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*sec.Principal, error)
}

// Rejection messages returned by the gates.
const (
	MessageNoToken       = "Not authorized, no token"
	MessageInvalidToken  = "Not authorized, token failed"
	MessageUnknownUser   = "Not authorized, user no longer exists"
	MessageNotAdmin      = "Not authorized as an admin"
	MessageNotAuthorized = "Not authorized"
)

// Authenticate builds the stage that establishes who is making the request.
//
// # Flow
//  1. No session cookie: rejected (401).
//  2. Token fails verification (malformed, expired, bad signature): rejected (401).
//  3. Identity no longer exists: rejected (401).
//  4. Otherwise the [*sec.Principal] is attached to the request context.
//
// Nothing is cached; every request performs exactly one identity lookup.
func Authenticate(extractor TokenExtractor, verifier TokenVerifier, resolver PrincipalResolver) Stage {
	return func(request *http.Request) (*http.Request, error) {
		logger := ctxutil.GetLogger(request.Context())

		// ── 1. Transport ──────────────────────────────────────────────────
		token, found := extractor.Extract(request)
		if !found {
			return nil, apperr.Unauthorized(MessageNoToken)
		}

		// ── 2. Token Verification ─────────────────────────────────────────
		userID, err := verifier.Verify(token)
		if err != nil {
			logger.WarnContext(request.Context(), "authentication_rejected",
				slog.String("reason", "invalid_token"),
				slog.String("error", err.Error()),
			)
			return nil, apperr.Unauthorized(MessageInvalidToken)
		}

		// ── 3. Identity Resolution ────────────────────────────────────────
		principal, err := resolver.ResolvePrincipal(request.Context(), userID)
		if err != nil {
			if apperr.HasCode(err, "NOT_FOUND") {
				logger.WarnContext(request.Context(), "authentication_rejected",
					slog.String("reason", "unknown_identity"),
					slog.String("user_id", userID),
				)
				return nil, apperr.Unauthorized(MessageUnknownUser)
			}
			return nil, err
		}

		// ── 4. Context Injection ──────────────────────────────────────────
		return request.WithContext(ctxutil.WithPrincipal(request.Context(), principal)), nil
	}
}

// # Authorization Gate

// Authorize builds a stage that admits only principals satisfying privilege.
//
// It must run after [Authenticate]. A missing principal is treated as an
// unauthenticated request.
func Authorize(privilege sec.Privilege, message string) Stage {
	return func(request *http.Request) (*http.Request, error) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			return nil, apperr.Unauthorized(MessageNotAuthorized)
		}

		if !privilege(principal) {
			ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "authorization_rejected",
				slog.String("user_id", principal.UserID),
			)
			return nil, apperr.InsufficientPrivilege(message)
		}

		return request, nil
	}
}

// RequireAdmin admits only administrators.
func RequireAdmin() Stage {
	return Authorize(sec.Admin, MessageNotAdmin)
}
