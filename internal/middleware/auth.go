package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userauth-dev/userauth/internal/domain"
	jwt_internal "github.com/userauth-dev/userauth/internal/jwt"
)

// Key to store the session principal in the request context
type key int

const PrincipalKey key = 0

// Auth holds dependencies for authentication middleware. It is the gate
// between anonymous and authenticated requests: a valid access token in the
// session cookie (or an Authorization header) yields a Principal in the
// request context.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires an authenticated session and
// responds with 401 otherwise.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := a.extractPrincipal(r)
			if err != nil {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the principal if a valid session is present but
// never rejects the request.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if principal, err := a.extractPrincipal(r); err == nil {
				ctx := context.WithValue(r.Context(), PrincipalKey, principal)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractPrincipal extracts and validates the session token from the request.
func (a *Auth) extractPrincipal(r *http.Request) (*domain.SessionUser, error) {
	// Try to get token from cookie first (for browser clients)
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		// If no cookie, try Authorization header (for API clients)
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	confirmed, ok := claims["confirmed"].(bool)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.SessionUser{Email: email, Confirmed: confirmed}, nil
}

// Sentinel errors for extractPrincipal
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// GetPrincipal retrieves the session principal from the request context.
func GetPrincipal(r *http.Request) *domain.SessionUser {
	principal, ok := r.Context().Value(PrincipalKey).(*domain.SessionUser)
	if !ok {
		return nil
	}
	return principal
}
