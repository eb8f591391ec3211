// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret hashes a plain-text admin secret with bcrypt, for ADMIN_PASSWORD_HASH.
func HashSecret(plainText string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainText), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash secret: %w", err)
	}
	return string(hashedBytes), nil
}

// SecretMatcher compares a presented admin secret with the configured one.
type SecretMatcher struct {
	plain string
	hash  string
}

// NewSecretMatcher prefers the bcrypt hash when both forms are configured.
func NewSecretMatcher(plain, hash string) *SecretMatcher {
	return &SecretMatcher{plain: plain, hash: hash}
}

// Configured reports whether any secret is set.
func (matcher *SecretMatcher) Configured() bool {
	return matcher.plain != "" || matcher.hash != ""
}

// Match reports whether presented equals the configured secret.
// An empty presented value never matches.
func (matcher *SecretMatcher) Match(presented string) bool {
	if presented == "" {
		return false
	}
	if matcher.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(matcher.hash), []byte(presented)) == nil
	}
	if matcher.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(matcher.plain)) == 1
}
