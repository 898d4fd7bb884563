// Package token issues and validates signed, time-limited email
// confirmation tokens. A token proves ownership of an email address;
// it is not itself authentication.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was genuine but issued too long ago.
	ErrExpired = errors.New("confirmation token expired")
	// ErrInvalid means the token is malformed or the signature doesn't verify.
	ErrInvalid = errors.New("confirmation token invalid")
)

type Service struct {
	key []byte
	now func() time.Time
}

// New derives the signing key from the server secret and a purpose salt,
// so tokens issued for one purpose never validate for another.
func New(secret, salt string) *Service {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(salt))
	return &Service{key: mac.Sum(nil), now: time.Now}
}

// Issue signs (email, issuedAt) into an opaque token string.
func (s *Service) Issue(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": s.now().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate checks the signature and age of a token and returns the email it
// was issued for. Any tampered or malformed token yields ErrInvalid; a
// genuine token older than maxAge yields ErrExpired.
func (s *Service) Validate(tokenStr string, maxAge time.Duration) (string, error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.key, nil
	})
	if err != nil || !t.Valid {
		return "", ErrInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalid
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return "", ErrInvalid
	}
	if s.now().After(issuedAt.Add(maxAge)) {
		return "", ErrExpired
	}

	email, err := claims.GetSubject()
	if err != nil || email == "" {
		return "", ErrInvalid
	}
	return email, nil
}
