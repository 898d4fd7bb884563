package middleware

import "net/http"

// authRedirectWriter intercepts 401 responses and redirects the browser to
// the login page instead.
type authRedirectWriter struct {
	http.ResponseWriter
	request    *http.Request
	redirected bool
}

func (w *authRedirectWriter) WriteHeader(statusCode int) {
	if w.redirected {
		return
	}

	if statusCode == http.StatusUnauthorized {
		w.redirected = true
		http.Redirect(w.ResponseWriter, w.request, "/login/", http.StatusSeeOther)
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *authRedirectWriter) Write(data []byte) (int, error) {
	if w.redirected {
		return len(data), nil // Discard body after redirect
	}
	return w.ResponseWriter.Write(data)
}

// RedirectToLogin wraps auth middleware so a browser hitting a protected
// page without a session lands on the login page rather than a bare 401.
func RedirectToLogin(authMiddleware func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &authRedirectWriter{ResponseWriter: w, request: r}
			authMiddleware(next).ServeHTTP(wrapper, r)
		})
	}
}
