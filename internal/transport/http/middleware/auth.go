package middleware

import (
	"context"
	"net/http"
	"strings"

	"payclock/internal/domain/auth"
	"payclock/internal/transport/http/api"
)

type ctxKey int

const ctxKeyReviewer ctxKey = iota

// Auth attaches the reviewer identity when a valid bearer token is present;
// requests without one pass through anonymously.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyReviewer, auth.ReviewerContext{
				Email: claims.Email,
				Name:  claims.Name,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetReviewer(ctx context.Context) (auth.ReviewerContext, bool) {
	reviewer, ok := ctx.Value(ctxKeyReviewer).(auth.ReviewerContext)
	return reviewer, ok
}

// RequireReviewer guards mutating routes.
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetReviewer(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
