package handler

import (
	"net/http"

	"github.com/userauth-dev/userauth/internal/middleware"
)

// Home is the protected index page; the auth middleware guarantees a
// session principal is present.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r)
	if principal == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]any{
		"email":     principal.ID(),
		"confirmed": principal.Confirmed,
	})
}
