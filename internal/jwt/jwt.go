package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userauth-dev/userauth/internal/domain"
	internal_errors "github.com/userauth-dev/userauth/internal/errors"
	"github.com/userauth-dev/userauth/internal/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["email"] = user.Email
	claims["confirmed"] = user.Confirmed
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", internal_errors.Unauthorized("Can't create token")
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.Unauthorized("Unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, internal_errors.Unauthorized("Invalid token signature")
	}

	if !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid access token")
	}

	return token, nil
}
