package middleware

import (
	"net/http"

	"github.com/userauth-dev/userauth/internal/requestid"
)

// RequestID assigns every request a correlation id, exposed both in the
// context (picked up by the logger) and the X-Request-Id response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set("X-Request-Id", id)
		ctx := requestid.WithContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
