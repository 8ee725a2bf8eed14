/**
 * @description
 * This file contains custom middleware for the HTTP router: bearer session
 * authentication and the client-address helper used when recording document
 * acknowledgements.
 *
 * @dependencies
 * - context, net/http, strings: Standard Go libraries.
 * - internal/app, internal/domain, internal/store: Token parsing and session lookup.
 */

package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/RizeFinance/onboarding-service/internal/app"
	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/internal/store"
)

// SessionContextKey is a custom type for the context key to avoid collisions.
type SessionContextKey string

const sessionKey SessionContextKey = "onboardingSession"

// SessionAuthMiddleware validates the bearer token, loads the session it
// references, and stores the session on the request context. Missing, bad,
// expired, and revoked tokens all answer 401.
func SessionAuthMiddleware(service *app.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			sessionID, err := service.Tokens().Parse(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			session, err := service.FindSession(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, store.ErrSessionNotFound) {
					writeError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				writeError(w, http.StatusInternalServerError, "Something went wrong")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the authenticated session from the request
// context. Handlers behind SessionAuthMiddleware should use this.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok
}

// clientIP extracts the originating client address, preferring the first
// entry of X-Forwarded-For when the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
