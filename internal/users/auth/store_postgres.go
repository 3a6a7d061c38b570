// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/database/schema"
	"github.com/taibuivan/accounts/internal/platform/dberr"
	"github.com/taibuivan/accounts/pkg/uuid"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// Storage-specific errors (like pgx.ErrNoRows or unique violations) are
// mapped to [apperr.AppError] types by [dberr.Wrap].
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var account = schema.UserAccount

const resourceUser = "User"

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: CONFLICT on duplicate email or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.Table, account.SelectList())

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "postgres_user_repo_create_failed", resourceUser, MessageUserExists)
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	// The id column is a uuid; anything else cannot match and would fail the cast.
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound(resourceUser)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		account.SelectList(), account.Table, account.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_id_failed", resourceUser, "")
	}
	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		account.SelectList(), account.Table, account.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find_by_email_failed", resourceUser, "")
	}
	return user, nil
}

/*
List returns every account ordered by creation time.

Parameters:
  - context: context.Context

Returns:
  - []*User: All accounts
  - error: Database errors
*/
func (repository *PostgresUserRepository) List(context context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		account.SelectList(), account.Table, account.CreatedAt, account.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_list_failed", resourceUser, "")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err))
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err))
	}

	return users, nil
}

/*
Update persists username, email and password hash changes.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: NOT_FOUND, CONFLICT or database errors
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		account.Table,
		account.Username, account.Email, account.Password, account.UpdatedAt,
		account.ID)

	user.UpdatedAt = time.Now().UTC()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_failed", resourceUser, MessageUserExists)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}

	return nil
}

/*
Delete removes the account row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NOT_FOUND or database errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	if !uuid.IsValid(id) {
		return apperr.NotFound(resourceUser)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, account.Table, account.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_delete_failed", resourceUser, "")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}

	return nil
}

// scanUser hydrates a [User] from a row in [schema.UserAccountTable.Columns] order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
