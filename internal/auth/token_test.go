package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/inventory-service/internal/domain"
)

const testIssuer = "https://www.demo.com"

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", testIssuer, time.Hour)

	token, exp, err := tm.Issue("user-123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, domain.AccessLevelAuth, claims.Access)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", testIssuer, time.Hour)
	tm.ttl = -time.Minute

	token, _, err := tm.Issue("u1")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issued := NewTokenManager("right-secret", testIssuer, time.Hour)
	token, _, err := issued.Issue("u2")
	require.NoError(t, err)

	verifier := NewTokenManager("wrong-secret", testIssuer, time.Hour)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	issued := NewTokenManager("secret", "https://other.example.com", time.Hour)
	token, _, err := issued.Issue("u3")
	require.NoError(t, err)

	verifier := NewTokenManager("secret", testIssuer, time.Hour)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", testIssuer, time.Hour)
	token, _, err := tm.Issue("u4")
	require.NoError(t, err)

	// flip one byte inside the payload segment
	raw := []byte(token)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	_, err = tm.Verify(string(raw))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", testIssuer, time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
