package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userauth-dev/userauth/internal/domain"
	"github.com/userauth-dev/userauth/internal/jwt"
	"github.com/userauth-dev/userauth/internal/middleware"
)

func TestHome(t *testing.T) {
	jwtService := jwt.New("test_key", time.Hour)
	h := newTestHandler(&MockUserService{})
	auth := middleware.NewAuth(jwtService)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.RedirectToLogin(auth.NeedAuth()))
		r.Get("/", h.Home)
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login/", rr.Header().Get("Location"))
	})

	t.Run("authenticated sees the page", func(t *testing.T) {
		token, err := jwtService.NewToken(domain.User{Email: "alice@example.com", Confirmed: true})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "alice@example.com")
	})
}
