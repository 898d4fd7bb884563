package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userauth-dev/userauth/internal/domain"
	"github.com/userauth-dev/userauth/internal/jwt"
)

func protectedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := GetPrincipal(r)
		require.NotNil(t, principal)
		w.Write([]byte(principal.ID()))
	})
}

func TestNeedAuth(t *testing.T) {
	jwtService := jwt.New("test_key", time.Hour)
	auth := NewAuth(jwtService)
	handler := auth.NeedAuth()(protectedHandler(t))

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		token, err := jwtService.NewToken(domain.User{Email: "a@b.com", Confirmed: true})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "a@b.com", rr.Body.String())
	})

	t.Run("valid bearer header", func(t *testing.T) {
		token, err := jwtService.NewToken(domain.User{Email: "a@b.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("token signed with different key", func(t *testing.T) {
		otherService := jwt.New("other_key", time.Hour)
		token, err := otherService.NewToken(domain.User{Email: "a@b.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredService := jwt.New("test_key", -time.Minute)
		token, err := expiredService.NewToken(domain.User{Email: "a@b.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRedirectToLogin(t *testing.T) {
	jwtService := jwt.New("test_key", time.Hour)
	auth := NewAuth(jwtService)
	handler := RedirectToLogin(auth.NeedAuth())(protectedHandler(t))

	t.Run("anonymous browser is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login/", rr.Header().Get("Location"))
	})

	t.Run("authenticated request passes through", func(t *testing.T) {
		token, err := jwtService.NewToken(domain.User{Email: "a@b.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt.New("test_key", time.Hour)
	auth := NewAuth(jwtService)
	handler := auth.OptionalAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPrincipal(r) == nil {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte("authenticated"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "anonymous", rr.Body.String())

	token, err := jwtService.NewToken(domain.User{Email: "a@b.com"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "authenticated", rr.Body.String())
}
