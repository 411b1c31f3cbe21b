package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tiketi/auth"
	"tiketi/client"
	"tiketi/models"
)

type claimsCtxKey struct{}

// ClaimsFromContext returns the verified token claims attached by
// RequireAuth.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(auth.Claims)
	return claims, ok
}

// bearerToken pulls the token from the Authorization header, falling
// back to the session cookie for browser-originated requests.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(auth.TokenKey); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth verifies the bearer token, attaches the claims and the
// raw token to the request context, and rejects the request with 401
// otherwise.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			Unauthorized(w, "Authentication required")
			return
		}
		claims, err := a.tokens.Verify(token)
		if err != nil {
			Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsCtxKey{}, claims)
		ctx = client.WithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards a subtree for the given roles. Must be mounted
// inside RequireAuth.
func (a *API) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				Unauthorized(w, "Authentication required")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			Forbidden(w, "Insufficient role")
		})
	}
}

// RequestLogger logs method, path, status and latency for every
// request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
