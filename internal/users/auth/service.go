// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/validate"
	"github.com/taibuivan/accounts/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) (bool, error)
}

// TokenIssuer creates signed session tokens.
type TokenIssuer interface {
	Issue(userID string, timeToLive time.Duration) (string, error)
}

// EventRecorder counts authentication outcomes.
type EventRecorder interface {
	RecordAuthEvent(event string)
}

// Authentication events reported to the [EventRecorder].
const (
	EventRegistered       = "registered"
	EventRegisterConflict = "register_conflict"
	EventLoginSucceeded   = "login_succeeded"
	EventLoginFailed      = "login_failed"
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	hasher         PasswordHasher
	tokenIssuer    TokenIssuer
	sessionTTL     time.Duration
	recorder       EventRecorder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	tokenIssuer TokenIssuer,
	sessionTTL time.Duration,
	recorder EventRecorder,
) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		sessionTTL:     sessionTTL,
		recorder:       recorder,
	}
}

// Session is the outcome of a successful registration or login.
type Session struct {
	Token string
	User  *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then
issues its first session token.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Token and created entity
  - err: ValidationError, Conflict (email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	username := NormalizeUsername(input.Username)
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, MaxUsernameLength).
		Required(FieldEmail, email).
		Required(FieldPassword, input.Password).
		Custom(FieldPassword, len(input.Password) > MaxPasswordLength, MessagePasswordTooLong)
	if email != "" {
		validator.Email(FieldEmail, email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Friendly early answer. The unique index on email remains the actual guard.
	_, err := service.userRepository.FindByEmail(context, email)
	switch {
	case err == nil:
		service.recorder.RecordAuthEvent(EventRegisterConflict)
		return nil, apperr.Conflict(MessageUserExists)
	case !apperr.HasCode(err, "NOT_FOUND"):
		return nil, err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			service.recorder.RecordAuthEvent(EventRegisterConflict)
		}
		return nil, err
	}

	token, err := service.tokenIssuer.Issue(user.ID, service.sessionTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	service.recorder.RecordAuthEvent(EventRegistered)
	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return &Session{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

An unknown email and a wrong password produce the same error, so the
response never reveals which accounts exist.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Token and authenticated entity
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := NormalizeEmail(input.Email)
	logger := ctxutil.GetLogger(context)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			service.recorder.RecordAuthEvent(EventLoginFailed)
			logger.WarnContext(context, "login_failed", slog.String("reason", "unknown_email"))
			return nil, apperr.Unauthorized(MessageInvalidCredentials)
		}
		return nil, err
	}

	isPasswordValid, err := service.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_verify_failed for %s: %w", user.ID, err))
	}

	if !isPasswordValid {
		service.recorder.RecordAuthEvent(EventLoginFailed)
		logger.WarnContext(context, "login_failed",
			slog.String("reason", "wrong_password"),
			slog.String("user_id", user.ID),
		)
		return nil, apperr.Unauthorized(MessageInvalidCredentials)
	}

	token, err := service.tokenIssuer.Issue(user.ID, service.sessionTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	service.recorder.RecordAuthEvent(EventLoginSucceeded)
	logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))

	return &Session{Token: token, User: user}, nil
}

// # Identity Resolution

// PrincipalResolver adapts a [UserRepository] to the Authentication Gate.
type PrincipalResolver struct {
	userRepository UserRepository
}

// NewPrincipalResolver creates a resolver backed by userRepo.
func NewPrincipalResolver(userRepo UserRepository) *PrincipalResolver {
	return &PrincipalResolver{userRepository: userRepo}
}

// ResolvePrincipal loads the current account state for userID.
func (resolver *PrincipalResolver) ResolvePrincipal(context context.Context, userID string) (*sec.Principal, error) {
	user, err := resolver.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}
