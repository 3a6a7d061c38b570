// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/validate"
	"github.com/taibuivan/accounts/internal/users/auth"
	"github.com/taibuivan/accounts/pkg/uuid"
)

// # Service Layer

// Service orchestrates profile edits and account administration.
type Service struct {
	userRepository auth.UserRepository
	hasher         auth.PasswordHasher
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo auth.UserRepository, hasher auth.PasswordHasher) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
	}
}

// # Profile Management

/*
GetProfile retrieves the current state of the caller's own account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: NOT_FOUND if the account vanished, or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateProfileInput carries the profile fields a member may change.
// Empty fields keep their stored value.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

/*
UpdateProfile applies a partial set of changes to the caller's account.

Description: Fetches the existing user state, overrides provided fields,
re-hashes a new password, and persists the result. The session token only
carries the account ID, so it stays valid across the edit.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: NOT_FOUND, CONFLICT (email taken by another account), or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {

	// ── 1. Load current state ──
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	username := auth.NormalizeUsername(input.Username)
	email := auth.NormalizeEmail(input.Email)

	// ── 2. Validate supplied fields ──
	validator := &validate.Validator{}
	validator.MaxLen(auth.FieldUsername, username, auth.MaxUsernameLength).
		Custom(auth.FieldPassword, len(input.Password) > auth.MaxPasswordLength, auth.MessagePasswordTooLong)
	if email != "" {
		validator.Email(auth.FieldEmail, email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 3. Apply delta updates ──
	if username != "" {
		user.Username = username
	}

	if email != "" && email != user.Email {
		owner, err := service.userRepository.FindByEmail(context, email)
		switch {
		case err == nil && owner.ID != user.ID:
			return nil, apperr.Conflict(auth.MessageUserExists)
		case err != nil && !apperr.HasCode(err, "NOT_FOUND"):
			return nil, err
		}
		user.Email = email
	}

	if input.Password != "" {
		hashedPassword, err := service.hasher.Hash(input.Password)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
		}
		user.PasswordHash = hashedPassword
	}

	// ── 4. Persist ──
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Administration

/*
ListUsers returns every account, oldest first.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All accounts
  - error: Storage failures
*/
func (service *Service) ListUsers(context context.Context) ([]*auth.User, error) {
	return service.userRepository.List(context)
}

/*
DeleteUser removes a non-admin account.

Description: Identifiers that are not well-formed UUIDs cannot name an
account and are reported as NOT_FOUND. Administrator accounts are never
removed through the API.

Parameters:
  - context: context.Context
  - targetID: string

Returns:
  - error: NOT_FOUND, CONFLICT (target is an admin), or storage failures
*/
func (service *Service) DeleteUser(context context.Context, targetID string) error {
	if !uuid.IsValid(targetID) {
		return apperr.NotFound(resourceUser)
	}

	target, err := service.userRepository.FindByID(context, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin {
		return apperr.Conflict(MessageCannotDeleteAdmin)
	}

	if err := service.userRepository.Delete(context, targetID); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)
	attributes := []any{slog.String("target_id", targetID)}
	if actor := ctxutil.GetPrincipal(context); actor != nil {
		attributes = append(attributes, slog.String("user_id", actor.UserID))
	}
	logger.InfoContext(context, "user_deleted", attributes...)

	return nil
}
