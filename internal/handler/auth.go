package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/userauth-dev/userauth/internal/domain"
	internal_errors "github.com/userauth-dev/userauth/internal/errors"
	"github.com/userauth-dev/userauth/internal/logger"
	"github.com/userauth-dev/userauth/internal/middleware/metrics"
)

type registrationForm struct {
	Email    string `validate:"required,email,min=6,max=40"`
	Password string `validate:"required,min=6,max=25"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Register creates a new unconfirmed account from the posted form and sends
// a confirmation link to the given address.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := registrationForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}
	if fields := validateForm(form); fields != nil {
		metrics.Registrations.WithLabelValues("invalid").Inc()
		writeFieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	creds := domain.Credentials{Email: form.Email, Password: form.Password}
	_, err := h.users.Register(r.Context(), creds, formDetails(r))
	if err != nil {
		if internal_errors.IsConflict(err) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			writeFieldErrors(w, http.StatusConflict, map[string]string{"email": err.Error()})
			return
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		logger.Log.ErrorContext(r.Context(), "registration failed", "error", err)
		writeErrorAndStatusCode(w, err)
		return
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formDetails collects optional profile fields into the schemaless details bag.
func formDetails(r *http.Request) map[string]any {
	details := map[string]any{}
	for _, field := range []string{"first_name", "last_name", "role"} {
		if v := r.PostFormValue(field); v != "" {
			details[field] = v
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// Login verifies the posted credentials and establishes a session bound to
// the account's email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if fields := validateForm(form); fields != nil {
		writeFieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	user, err := h.users.VerifyCredentials(r.Context(), domain.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		metrics.Logins.WithLabelValues(loginOutcome(err)).Inc()
		writeErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.jwt.NewToken(user)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		writeErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(accessToken, int(h.cfg.SessionTTL().Seconds())))
	metrics.Logins.WithLabelValues("success").Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func loginOutcome(err error) string {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusUnauthorized {
		return "rejected"
	}
	return "error"
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// ConfirmEmail handles a clicked confirmation link.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	email, err := h.users.ConfirmEmail(r.Context(), tokenStr)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	logger.Log.InfoContext(r.Context(), "email confirmed", "email", email)
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// LoginPage exists so unauthenticated redirects have somewhere to land;
// form rendering belongs to the separate frontend.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Please log in: POST /login/ with email and password"))
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
