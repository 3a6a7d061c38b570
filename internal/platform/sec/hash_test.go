// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/accounts/internal/platform/sec"
)

/*
TestPasswordHasher_RoundTrip verifies that a hash matches its own plaintext only.
*/
func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"unicode", "pässwörd-日本語"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			ok, err := hasher.Verify(tt.password, hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = hasher.Verify(tt.password+"x", hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

/*
TestPasswordHasher_Salted checks that two hashes of the same input differ.
*/
func TestPasswordHasher_Salted(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := hasher.Verify("same-password", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

/*
TestPasswordHasher_Cost ensures the configured work factor ends up in the hash.
*/
func TestPasswordHasher_Cost(t *testing.T) {
	hash, err := sec.NewPasswordHasher(0).Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, sec.DefaultHashCost, cost)
}

/*
TestPasswordHasher_MalformedHash reports corrupted stored hashes as errors.
*/
func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	ok, err := hasher.Verify("password123", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, sec.ErrMalformedHash)
}
