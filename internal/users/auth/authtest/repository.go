// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides an in-memory [auth.UserRepository] for tests of
// packages that depend on user accounts.
package authtest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/users/auth"
)

// Repository is a map-backed [auth.UserRepository] that enforces the same
// unique-email rule as the PostgreSQL index.
type Repository struct {
	mu    sync.Mutex
	users map[string]auth.User
	clock time.Time

	// Err, when set, is returned by every method.
	Err error
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		users: make(map[string]auth.User),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Seed inserts users directly, bypassing the uniqueness check.
func (repo *Repository) Seed(users ...*auth.User) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range users {
		stored := *user
		stored.CreatedAt = repo.tick()
		stored.UpdatedAt = stored.CreatedAt
		repo.users[user.ID] = stored
	}
}

// Len returns the number of stored accounts.
func (repo *Repository) Len() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.users)
}

func (repo *Repository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return nil, repo.Err
	}

	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repo *Repository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return nil, repo.Err
	}

	for _, user := range repo.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *Repository) List(_ context.Context) ([]*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return nil, repo.Err
	}

	users := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, &user)
	}

	slices.SortFunc(users, func(a, b *auth.User) int {
		if cmp := a.CreatedAt.Compare(b.CreatedAt); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.ID, b.ID)
	})
	return users, nil
}

func (repo *Repository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}
	if repo.emailTaken(user.Email, "") {
		return apperr.Conflict(auth.MessageUserExists)
	}

	user.CreatedAt = repo.tick()
	user.UpdatedAt = user.CreatedAt
	repo.users[user.ID] = *user
	return nil
}

func (repo *Repository) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}

	stored, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if repo.emailTaken(user.Email, user.ID) {
		return apperr.Conflict(auth.MessageUserExists)
	}

	stored.Username = user.Username
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.UpdatedAt = repo.tick()
	repo.users[user.ID] = stored

	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (repo *Repository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}

	delete(repo.users, id)
	return nil
}

func (repo *Repository) emailTaken(email, exceptID string) bool {
	for id, user := range repo.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

// tick advances the fake clock so creation order is deterministic.
func (repo *Repository) tick() time.Time {
	repo.clock = repo.clock.Add(time.Second)
	return repo.clock
}
