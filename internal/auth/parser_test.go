package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		UserID: uuid.New(),
		Role:   model.RoleExecutor,
		Name:   "Juan Técnico",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser(testSecret)
	claims := validClaims()

	parsed, err := parser.Parse(signToken(t, testSecret, claims))
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, model.RoleExecutor, parsed.Role)
	assert.Equal(t, "Juan Técnico", parsed.Name)
}

func TestParseRejectsBadTokens(t *testing.T) {
	parser := NewParser(testSecret)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := parser.Parse(signToken(t, "another-secret", validClaims()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := parser.Parse(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := validClaims()
		claims.UserID = uuid.Nil
		_, err := parser.Parse(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing role", func(t *testing.T) {
		claims := validClaims()
		claims.Role = ""
		_, err := parser.Parse(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parser.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
