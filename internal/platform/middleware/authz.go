// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/constants"
	"github.com/taibuivan/langdata/internal/platform/ctxutil"
	"github.com/taibuivan/langdata/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AdminClaims, error)
}

// SecretMatcher compares the admin header against the configured secret.
type SecretMatcher interface {
	Match(presented string) bool
}

// AdminGate holds the credentials accepted on mutation routes.
// Verifier may be nil when no public key is configured.
type AdminGate struct {
	Secret   SecretMatcher
	Verifier TokenVerifier
}

/*
RequireAdmin rejects mutation requests that carry no trusted credential.

# Flow

 1. The shared secret header grants every role.
 2. Otherwise an 'Authorization: Bearer <token>' is verified and its role
    must be at least the required one.
 3. Anything else is answered with 403 Forbidden before the handler runs.

Parameters:
  - gate: The accepted credentials.
  - role: Minimum role required of bearer tokens.

Returns:
  - An [http.Handler] middleware.
*/
func RequireAdmin(gate AdminGate, role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Shared secret header
			if gate.Secret != nil && gate.Secret.Match(request.Header.Get(constants.HeaderAdminCredential)) {
				allow(writer, request, next, constants.PrincipalHeader)
				return
			}

			// 2. Bearer token
			if gate.Verifier != nil {
				if tokenStr, ok := bearerToken(request); ok {
					claims, err := gate.Verifier.VerifyToken(tokenStr)
					if err == nil && sec.Role(claims.Role).AtLeast(role) {
						allow(writer, request, next, claims.Subject)
						return
					}
				}
			}

			// 3. Everything else
			writeForbidden(writer, request)
		})
	}
}

func allow(writer http.ResponseWriter, request *http.Request, next http.Handler, principal string) {
	recordPrincipal(request.Context(), principal)
	ctx := ctxutil.WithAdmin(request.Context(), principal)
	next.ServeHTTP(writer, request.WithContext(ctx))
}

func bearerToken(request *http.Request) (string, bool) {
	parts := strings.SplitN(request.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeForbidden(writer http.ResponseWriter, request *http.Request) {
	ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "admin_gate_rejected",
		"path", request.URL.Path,
	)
	appError := apperr.Forbidden("Admin credential required")
	writeError(writer, appError.HTTPStatus, appError.Code, appError.Message)
}
