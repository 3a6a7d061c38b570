// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups of a missing account return an [apperr.AppError] with code
// NOT_FOUND. Create and Update return CONFLICT when the email is taken; the
// storage's unique index is what enforces that, not the caller.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		List returns every account, oldest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: CONFLICT on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to username, email and password hash.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: NOT_FOUND, CONFLICT on duplicate email, or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete permanently removes the account.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NOT_FOUND or persistence failures
	*/
	Delete(context context.Context, id string) error
}
