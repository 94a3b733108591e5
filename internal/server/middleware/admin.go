package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog"
)

// Authorizer decides whether an admin credential grants access.
type Authorizer func(credential string) bool

// StaticPassword returns an Authorizer that compares against a fixed
// password in constant time. An empty password rejects everything.
func StaticPassword(password string) Authorizer {
	return func(credential string) bool {
		if password == "" || credential == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(credential), []byte(password)) == 1
	}
}

// AdminGate validates the admin credential on protected endpoints. The
// credential is read from the X-Admin-Key header.
func AdminGate(authorize Authorizer, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := r.Header.Get("X-Admin-Key")
			if !authorize(credential) {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", credential != "").
					Msg("Admin authentication failed")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"data":null,"error":{"code":"UNAUTHORIZED","message":"Invalid or missing admin key","details":"Provide a valid admin key in the X-Admin-Key header"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
