package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAccess_Claims(t *testing.T) {
	t.Parallel()

	mgr := NewJWTManager("test-secret", 7*24*time.Hour)
	token, exp, err := mgr.IssueAccess("acc-123", "CITIZEN")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "acc-123", claims["sub"])
	require.Equal(t, "CITIZEN", claims["role"])
}

func TestIssueAccess_WrongSecret(t *testing.T) {
	t.Parallel()

	mgr := NewJWTManager("right-secret", time.Hour)
	token, _, err := mgr.IssueAccess("acc-1", "COLLECTOR")
	require.NoError(t, err)

	_, err = jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	require.Error(t, err)
}
