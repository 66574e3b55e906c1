package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vaultpass/secretgen-go/internal/crypto"
	"github.com/vaultpass/secretgen-go/internal/service"
)

// JWTAuth returns middleware that requires a valid Bearer token from the
// Authorization header and stores its client id in the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return bearerAuth(secret, true)
}

// OptionalJWTAuth behaves like JWTAuth but lets anonymous requests through.
// A token that is present but invalid is still rejected.
func OptionalJWTAuth(secret string) func(http.Handler) http.Handler {
	return bearerAuth(secret, false)
}

func bearerAuth(secret string, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := service.WithClientID(r.Context(), claims.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
