// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/users/auth"
	"github.com/taibuivan/accounts/internal/users/auth/authtest"
)

// --- fixtures ---

type eventLog struct {
	events []string
}

func (log *eventLog) RecordAuthEvent(event string) {
	log.events = append(log.events, event)
}

type serviceFixture struct {
	service *auth.Service
	repo    *authtest.Repository
	codec   *sec.TokenCodec
	events  *eventLog
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	codec, err := sec.NewTokenCodec("service-secret")
	require.NoError(t, err)

	repo := authtest.NewRepository()
	events := &eventLog{}
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	return &serviceFixture{
		service: auth.NewService(repo, hasher, codec, time.Hour, events),
		repo:    repo,
		codec:   codec,
		events:  events,
	}
}

func (fixture *serviceFixture) register(t *testing.T, username, email, password string) *auth.Session {
	t.Helper()
	session, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return session
}

// --- register ---

/*
TestRegister_Success persists a normalized, hashed, non-admin account and
issues a token for it.
*/
func TestRegister_Success(t *testing.T) {
	fixture := newServiceFixture(t)

	session := fixture.register(t, "  Alice ", " Alice@Example.COM ", "hunter22")

	assert.Equal(t, "Alice", session.User.Username)
	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.False(t, session.User.IsAdmin)
	assert.NotEqual(t, "hunter22", session.User.PasswordHash)
	assert.Equal(t, 1, fixture.repo.Len())

	userID, err := fixture.codec.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)
	assert.Equal(t, []string{auth.EventRegistered}, fixture.events.events)
}

/*
TestRegister_MissingFields reports every absent field at once.
*/
func TestRegister_MissingFields(t *testing.T) {
	fixture := newServiceFixture(t)

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{Email: "  "})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)
	assert.Zero(t, fixture.repo.Len())
}

/*
TestRegister_DuplicateEmail rejects the second account and leaves the first untouched.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	first := fixture.register(t, "alice", "alice@example.com", "first-password")

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "mallory",
		Email:    "ALICE@example.com",
		Password: "second-password",
	})

	require.True(t, apperr.HasCode(err, "CONFLICT"))
	assert.Equal(t, auth.MessageUserExists, err.Error())
	assert.Equal(t, 1, fixture.repo.Len())

	stored, err := fixture.repo.FindByID(context.Background(), first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, first.User.PasswordHash, stored.PasswordHash)

	_, err = fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "alice@example.com",
		Password: "first-password",
	})
	assert.NoError(t, err)
}

/*
TestRegister_StorageFailure propagates repository errors unchanged.
*/
func TestRegister_StorageFailure(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.repo.Err = apperr.Internal(errors.New("connection refused"))

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})

	assert.True(t, apperr.HasCode(err, "INTERNAL_ERROR"))
}

// --- login ---

/*
TestLogin_Success accepts the registered password regardless of email casing.
*/
func TestLogin_Success(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := fixture.register(t, "alice", "alice@example.com", "hunter22")

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "Alice@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.User.ID, session.User.ID)
	userID, err := fixture.codec.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)
}

/*
TestLogin_GenericFailure returns the same error for a wrong password and an unknown email.
*/
func TestLogin_GenericFailure(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.register(t, "alice", "alice@example.com", "hunter22")

	_, wrongPassword := fixture.service.Login(context.Background(), auth.LoginInput{
		Email: "alice@example.com", Password: "not-it",
	})
	_, unknownEmail := fixture.service.Login(context.Background(), auth.LoginInput{
		Email: "nobody@example.com", Password: "hunter22",
	})

	for _, err := range []error{wrongPassword, unknownEmail} {
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
		assert.Equal(t, auth.MessageInvalidCredentials, appError.Message)
	}
	assert.Equal(t, apperr.As(wrongPassword).HTTPStatus, apperr.As(unknownEmail).HTTPStatus)
	assert.Equal(t, []string{auth.EventRegistered, auth.EventLoginFailed, auth.EventLoginFailed}, fixture.events.events)
}

/*
TestLogin_CorruptedHash treats an unparsable stored hash as a server fault.
*/
func TestLogin_CorruptedHash(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.repo.Seed(&auth.User{ID: "u-1", Username: "alice", Email: "alice@example.com", PasswordHash: "plaintext"})

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email: "alice@example.com", Password: "plaintext",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "INTERNAL_ERROR", appError.Code)
	assert.ErrorIs(t, err, sec.ErrMalformedHash)
}

/*
TestLogin_MissingFields rejects empty credentials before touching storage.
*/
func TestLogin_MissingFields(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.repo.Err = errors.New("must not be called")

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{})

	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

// --- principal resolution ---

/*
TestPrincipalResolver maps stored accounts to principals and passes NOT_FOUND through.
*/
func TestPrincipalResolver(t *testing.T) {
	repo := authtest.NewRepository()
	repo.Seed(&auth.User{ID: "admin-1", Username: "root", Email: "root@example.com", IsAdmin: true})
	resolver := auth.NewPrincipalResolver(repo)

	principal, err := resolver.ResolvePrincipal(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, &sec.Principal{UserID: "admin-1", Username: "root", Email: "root@example.com", IsAdmin: true}, principal)

	_, err = resolver.ResolvePrincipal(context.Background(), "ghost")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestRegister_InvalidFields rejects malformed emails and passwords bcrypt cannot hash.
*/
func TestRegister_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		input auth.RegisterInput
		field string
	}{
		{"bad_email", auth.RegisterInput{Username: "alice", Email: "not-an-email", Password: "pw"}, auth.FieldEmail},
		{"display_name_email", auth.RegisterInput{Username: "alice", Email: "Alice <alice@example.com>", Password: "pw"}, auth.FieldEmail},
		{"long_password", auth.RegisterInput{Username: "alice", Email: "alice@example.com", Password: strings.Repeat("p", 73)}, auth.FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newServiceFixture(t)

			_, err := fixture.service.Register(context.Background(), tt.input)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, tt.field, appError.Details[0].Field)
			assert.Zero(t, fixture.repo.Len())
		})
	}
}
