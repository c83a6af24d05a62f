package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"giftlist/internal/models"
)

// GuestTokenHeader carries the anonymous guest bearer credential. It is
// mutually exclusive with the Authorization header on a single request.
const GuestTokenHeader = "X-Guest-Token"

// contextKey is a custom type used for storing values in a context without
// risking collisions.
type contextKey string

// ContextUserID is the key used to store and retrieve the authenticated
// user ID from the request context.
const ContextUserID contextKey = "contextUserID"

// ContextIdentity is the key used to store and retrieve the acting
// Identity (user, guest, or zero) from the request context.
const ContextIdentity contextKey = "contextIdentity"

// CheckJWTMiddleware validates the Authorization header of incoming
// requests. It checks for the presence of a Bearer token, parses the token
// to extract the user ID, and stores it in the request context. Requests
// without a valid token are rejected; this guards the owner-only routes.
func CheckJWTMiddleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" {
				writeErrorResponse(w, "missing auth header", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeErrorResponse(w, "invalid auth header", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(parts[1])
			if err != nil {
				writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
			h.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// IdentityMiddleware resolves the acting Identity for guest-accessible
// routes. A valid bearer token yields a user identity, the X-Guest-Token
// header yields a guest identity, and the absence of both yields the zero
// Identity, which is valid for read-only public views. A request carrying
// both credentials is rejected.
func IdentityMiddleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			guestToken := r.Header.Get(GuestTokenHeader)

			if authHeader != "" && guestToken != "" {
				writeErrorResponse(w, "provide either bearer or guest token, not both", http.StatusBadRequest)
				return
			}

			var identity models.Identity
			switch {
			case authHeader != "":
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					writeErrorResponse(w, "invalid auth header", http.StatusUnauthorized)
					return
				}
				claims, err := ParseToken(parts[1])
				if err != nil {
					writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
					return
				}
				identity = models.UserIdentity(claims.UserID)
			case guestToken != "":
				identity = models.GuestIdentity(guestToken)
			}

			ctx := context.WithValue(r.Context(), ContextIdentity, identity)
			h.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// IdentityFromContext returns the Identity resolved by IdentityMiddleware,
// or the zero Identity when none was stored.
func IdentityFromContext(ctx context.Context) models.Identity {
	identity, _ := ctx.Value(ContextIdentity).(models.Identity)
	return identity
}

// writeErrorResponse writes a JSON-formatted error response to the HTTP
// response writer.
func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Errors: errorInfo})
}
