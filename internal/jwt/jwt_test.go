package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userauth-dev/userauth/internal/domain"
)

func TestNewTokenDecodeToken(t *testing.T) {
	j := New("secret", time.Hour)

	tokenStr, err := j.NewToken(domain.User{Email: "a@b.com", Confirmed: true})
	require.NoError(t, err)

	token, err := j.DecodeToken(tokenStr)
	require.NoError(t, err)

	claims := token.Claims.(gojwt.MapClaims)
	assert.Equal(t, "a@b.com", claims["email"])
	assert.Equal(t, true, claims["confirmed"])
}

func TestDecodeToken_Expired(t *testing.T) {
	j := New("secret", -time.Minute)

	tokenStr, err := j.NewToken(domain.User{Email: "a@b.com"})
	require.NoError(t, err)

	_, err = j.DecodeToken(tokenStr)
	assert.Error(t, err)
}

func TestDecodeToken_WrongKey(t *testing.T) {
	issuer := New("secret", time.Hour)
	other := New("different", time.Hour)

	tokenStr, err := issuer.NewToken(domain.User{Email: "a@b.com"})
	require.NoError(t, err)

	_, err = other.DecodeToken(tokenStr)
	assert.Error(t, err)
}
