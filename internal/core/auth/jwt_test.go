package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("", "ace", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)

	j, err := New("k", "ace", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, j.TTL)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	j, err := New("secret", "ace", DefaultTTL)
	require.NoError(t, err)

	tok, err := j.Issue("u1", "a@example.com")
	require.NoError(t, err)

	id := j.Verify(tok)
	require.NotNil(t, id)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "a@example.com", id.Email)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), c.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejects(t *testing.T) {
	j, _ := New("secret", "ace", time.Hour)
	other, _ := New("other", "ace", time.Hour)

	foreign, err := other.Issue("u1", "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, j.Verify(foreign), "bad signature")
	assert.Nil(t, j.Verify("not.a.jwt"), "malformed")
	assert.Nil(t, j.Verify(""), "empty")

	past := time.Now().Add(-2 * time.Hour)
	j.now = func() time.Time { return past }
	expired, err := j.Issue("u1", "a@example.com")
	require.NoError(t, err)
	j.now = nil
	assert.Nil(t, j.Verify(expired), "expired")
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	j, _ := New("secret", "ace", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		ID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ace",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	assert.Nil(t, j.Verify(s))
}
