package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	ok, err := CheckPassword(hash, "s3cret-pass")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = CheckPassword(hash, "wrong-pass")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-input")
	require.NoError(t, err)
	h2, err := HashPassword("same-input")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
