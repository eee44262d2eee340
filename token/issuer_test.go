package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-tenant-auth/token"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "0123456789abcdef"
	testAccountID = "account-1"
)

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := token.NewIssuer(token.Config{})
	require.Error(t, err)
}

func TestNewIssuerDefaultTTL(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret})
	require.NoError(t, err)
	require.Equal(t, token.DefaultTTL, issuer.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret, TTL: time.Hour})
	require.NoError(t, err)

	raw, err := issuer.Issue(testAccountID)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := issuer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, testAccountID, claims.AccountID)
	require.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestIssueRequiresAccountID(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret})
	require.NoError(t, err)

	_, err = issuer.Issue("")
	require.Error(t, err)
}

func TestVerifyZeroTTLIsExpired(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret, TTL: time.Nanosecond})
	require.NoError(t, err)

	raw, err := issuer.Issue(testAccountID)
	require.NoError(t, err)

	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestVerifyExpiredWithInjectedClock(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := token.NewIssuer(
		token.Config{Secret: testSecret, TTL: time.Hour},
		token.WithNowTime(func() time.Time { return now }),
	)
	require.NoError(t, err)

	raw, err := issuer.Issue(testAccountID)
	require.NoError(t, err)

	// Still valid just before expiry.
	now = now.Add(59 * time.Minute)
	_, err = issuer.Verify(raw)
	require.NoError(t, err)

	// Expired afterwards, and distinguishable from a malformed token.
	now = now.Add(2 * time.Minute)
	_, err = issuer.Verify(raw)
	require.ErrorIs(t, err, token.ErrTokenExpired)
	require.NotErrorIs(t, err, token.ErrTokenMalformed)
}

func TestVerifyTamperedSignature(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret, TTL: time.Hour})
	require.NoError(t, err)

	raw, err := issuer.Issue(testAccountID)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	// Flip one byte in the signature segment.
	signature := []byte(parts[2])
	if signature[0] == 'A' {
		signature[0] = 'B'
	} else {
		signature[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(signature)

	_, err = issuer.Verify(tampered)
	require.ErrorIs(t, err, token.ErrTokenMalformed)
	require.NotErrorIs(t, err, token.ErrTokenExpired)
}

func TestVerifyGarbageInput(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret})
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(raw)
		require.ErrorIs(t, err, token.ErrTokenMalformed)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer, err := token.NewIssuer(token.Config{Secret: testSecret})
	require.NoError(t, err)
	other, err := token.NewIssuer(token.Config{Secret: "a-different-secret"})
	require.NoError(t, err)

	raw, err := issuer.Issue(testAccountID)
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, token.ErrTokenMalformed)
}

func TestIssueIsDeterministicPerClaims(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := token.NewIssuer(
		token.Config{Secret: testSecret, TTL: time.Hour},
		token.WithNowTime(func() time.Time { return now }),
	)
	require.NoError(t, err)

	// Same claims sign to the same token regardless of issuance order.
	first, err := issuer.Issue(testAccountID)
	require.NoError(t, err)
	_, err = issuer.Issue("someone-else")
	require.NoError(t, err)
	again, err := issuer.Issue(testAccountID)
	require.NoError(t, err)
	require.Equal(t, first, again)
}
