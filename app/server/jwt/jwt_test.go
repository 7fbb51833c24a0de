package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndParseSession(t *testing.T) {
	t.Parallel()

	j, err := New("super-secret", "app-1")
	require.NoError(t, err)

	token, err := j.SignSession("open-123", "Test User", time.Hour)
	require.NoError(t, err)

	session, err := j.ParseSession(token)
	require.NoError(t, err)
	require.Equal(t, "open-123", session.OpenID)
	require.Equal(t, "app-1", session.AppID)
	require.Equal(t, "Test User", session.Name)
	require.Greater(t, session.Expires, time.Now().Unix())
}

func TestParseSessionExpired(t *testing.T) {
	t.Parallel()

	j, err := New("super-secret", "app-1")
	require.NoError(t, err)

	token, err := j.SignSession("open-123", "Test User", -time.Second)
	require.NoError(t, err)

	_, err = j.ParseSession(token)
	require.Error(t, err)
}

func TestParseSessionWrongKey(t *testing.T) {
	t.Parallel()

	j1, err := New("secret-one", "app-1")
	require.NoError(t, err)
	j2, err := New("secret-two", "app-1")
	require.NoError(t, err)

	token, err := j1.SignSession("open-123", "Test User", time.Hour)
	require.NoError(t, err)

	_, err = j2.ParseSession(token)
	require.Error(t, err)
}

func TestParseSessionInvalidInput(t *testing.T) {
	t.Parallel()

	j, err := New("super-secret", "app-1")
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err = j.ParseSession(token)
		require.Error(t, err, "token %q should not verify", token)
	}
}

func TestNewEmptyKey(t *testing.T) {
	t.Parallel()

	_, err := New("", "app-1")
	require.Error(t, err)
}
