package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_TokenRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("issued tokens verify to the same email until expiry", prop.ForAll(
		func(email string) bool {
			tokens := NewTokenManager("test-secret", 1)

			tokenString, err := tokens.Issue(email)
			if err != nil {
				t.Logf("Failed to issue token: %v", err)
				return false
			}

			got, err := tokens.Verify(tokenString)
			if err != nil {
				t.Logf("Failed to verify token: %v", err)
				return false
			}

			return got == email
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestVerify_ExpiredToken(t *testing.T) {
	// Expiry of zero hours makes the token expired on arrival
	tokens := NewTokenManager("test-secret", 0)

	tokenString, err := tokens.Issue("ana@example.com")
	require.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", 1)
	verifier := NewTokenManager("secret-two", 1)

	tokenString, err := issuer.Issue("ana@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MalformedToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", 1)

	for _, tokenString := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := tokens.Verify(tokenString)
		assert.Error(t, err, "token %q should not verify", tokenString)
		assert.True(t, errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired))
	}
}

func TestVerify_WrongSigningMethod(t *testing.T) {
	tokens := NewTokenManager("test-secret", 1)

	// Unsigned token with the right claim shape
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingEmailClaim(t *testing.T) {
	secret := "test-secret"
	tokens := NewTokenManager(secret, 1)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
