// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/users/account"
	"github.com/taibuivan/accounts/internal/users/auth"
	"github.com/taibuivan/accounts/internal/users/auth/authtest"
	"github.com/taibuivan/accounts/pkg/uuid"
)

type accountFixture struct {
	service *account.Service
	repo    *authtest.Repository
	hasher  *sec.PasswordHasher
	member  *auth.User
	other   *auth.User
	admin   *auth.User
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	hasher := sec.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("old-password")
	require.NoError(t, err)

	fixture := &accountFixture{
		repo:   authtest.NewRepository(),
		hasher: hasher,
		member: &auth.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: hash},
		other:  &auth.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com", PasswordHash: hash},
		admin:  &auth.User{ID: uuid.New(), Username: "root", Email: "root@example.com", PasswordHash: hash, IsAdmin: true},
	}
	fixture.repo.Seed(fixture.admin, fixture.member, fixture.other)
	fixture.service = account.NewService(fixture.repo, hasher)
	return fixture
}

/*
TestUpdateProfile_Partial changes only the supplied fields.
*/
func TestUpdateProfile_Partial(t *testing.T) {
	fixture := newAccountFixture(t)

	user, err := fixture.service.UpdateProfile(context.Background(), fixture.member.ID, account.UpdateProfileInput{
		Username: "Alice Liddell",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Liddell", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, fixture.member.PasswordHash, user.PasswordHash)
}

/*
TestUpdateProfile_Password re-hashes a new password.
*/
func TestUpdateProfile_Password(t *testing.T) {
	fixture := newAccountFixture(t)

	_, err := fixture.service.UpdateProfile(context.Background(), fixture.member.ID, account.UpdateProfileInput{
		Password: "new-password",
	})
	require.NoError(t, err)

	stored, err := fixture.repo.FindByID(context.Background(), fixture.member.ID)
	require.NoError(t, err)

	matches, err := fixture.hasher.Verify("new-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, matches)

	matches, err = fixture.hasher.Verify("old-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.False(t, matches)
}

/*
TestUpdateProfile_Email normalizes the new address and refuses one owned by another account.
*/
func TestUpdateProfile_Email(t *testing.T) {
	fixture := newAccountFixture(t)

	user, err := fixture.service.UpdateProfile(context.Background(), fixture.member.ID, account.UpdateProfileInput{
		Email: " Alice.New@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice.new@example.com", user.Email)

	_, err = fixture.service.UpdateProfile(context.Background(), fixture.member.ID, account.UpdateProfileInput{
		Email: "BOB@example.com",
	})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	stored, err := fixture.repo.FindByID(context.Background(), fixture.member.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice.new@example.com", stored.Email)
}

/*
TestUpdateProfile_Vanished reports NOT_FOUND when the account was removed.
*/
func TestUpdateProfile_Vanished(t *testing.T) {
	fixture := newAccountFixture(t)
	require.NoError(t, fixture.repo.Delete(context.Background(), fixture.member.ID))

	_, err := fixture.service.UpdateProfile(context.Background(), fixture.member.ID, account.UpdateProfileInput{Username: "x"})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

/*
TestListUsers returns accounts in creation order.
*/
func TestListUsers(t *testing.T) {
	fixture := newAccountFixture(t)

	users, err := fixture.service.ListUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 3)
	assert.Equal(t, fixture.admin.ID, users[0].ID)
	assert.Equal(t, fixture.member.ID, users[1].ID)
	assert.Equal(t, fixture.other.ID, users[2].ID)
}

/*
TestDeleteUser covers removal, admin protection and unknown targets.
*/
func TestDeleteUser(t *testing.T) {
	tests := []struct {
		name   string
		target func(fixture *accountFixture) string
		code   string
		remain int
	}{
		{"removes_member", func(f *accountFixture) string { return f.member.ID }, "", 2},
		{"refuses_admin", func(f *accountFixture) string { return f.admin.ID }, "CONFLICT", 3},
		{"unknown_id", func(*accountFixture) string { return uuid.New() }, "NOT_FOUND", 3},
		{"malformed_id", func(*accountFixture) string { return "not-a-uuid" }, "NOT_FOUND", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newAccountFixture(t)

			err := fixture.service.DeleteUser(context.Background(), tt.target(fixture))

			if tt.code == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			}
			assert.Equal(t, tt.remain, fixture.repo.Len())
		})
	}
}

/*
TestUpdateProfile_Invalid rejects malformed input without touching storage.
*/
func TestUpdateProfile_Invalid(t *testing.T) {
	fixture := newAccountFixture(t)

	_, err := fixture.service.UpdateProfile(context.Background(), fixture.member.ID, account.UpdateProfileInput{
		Email:    "nope",
		Password: strings.Repeat("p", 100),
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 2)

	stored, err := fixture.repo.FindByID(context.Background(), fixture.member.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
}
