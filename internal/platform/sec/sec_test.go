// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/platform/sec"
)

func TestSecretMatcher_Plain(t *testing.T) {
	matcher := sec.NewSecretMatcher("s3cret", "")

	assert.True(t, matcher.Configured())
	assert.True(t, matcher.Match("s3cret"))
	assert.False(t, matcher.Match("S3cret"))
	assert.False(t, matcher.Match(""))
}

func TestSecretMatcher_Hash(t *testing.T) {
	hash, err := sec.HashSecret("s3cret")
	require.NoError(t, err)

	matcher := sec.NewSecretMatcher("ignored", hash)
	assert.True(t, matcher.Match("s3cret"))
	assert.False(t, matcher.Match("ignored"))
}

func TestSecretMatcher_Unconfigured(t *testing.T) {
	matcher := sec.NewSecretMatcher("", "")
	assert.False(t, matcher.Configured())
	assert.False(t, matcher.Match("anything"))
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleCurator))
	assert.True(t, sec.RoleCurator.AtLeast(sec.RoleCurator))
	assert.False(t, sec.RoleCurator.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.Role("reader").AtLeast(sec.RoleCurator))
}

func TestTokenVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, "issuer")

	sign := func(issuer string, expires time.Time) string {
		claims := sec.AdminClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "harvester",
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(expires),
			},
			Role: string(sec.RoleCurator),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return signed
	}

	claims, err := verifier.VerifyToken(sign("issuer", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "harvester", claims.Subject)
	assert.Equal(t, "curator", claims.Role)

	_, err = verifier.VerifyToken(sign("someone-else", time.Now().Add(time.Hour)))
	assert.Error(t, err)

	_, err = verifier.VerifyToken(sign("issuer", time.Now().Add(-time.Hour)))
	assert.Error(t, err)
}
