package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"hungryhub/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// Identity reads the user the gateway authenticated. This service only
// authorizes; it never validates credentials itself.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.Header.Get("X-User-ID"))
		role := r.Header.Get("X-User-Role")
		if err == nil && id > 0 && role != "" {
			ctx := context.WithValue(r.Context(), userContextKey, domain.User{ID: id, Role: domain.Role(role)})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func UserFrom(r *http.Request) (domain.User, bool) {
	user, ok := r.Context().Value(userContextKey).(domain.User)
	return user, ok
}
