// Package token issues and verifies self-contained bearer session tokens.
// A token binds an account id to an issue time and expiry and is signed
// with a process-wide secret; validity needs no server-side state.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when Config.TTL is zero.
const DefaultTTL = time.Hour

// Config holds the signing configuration, validated once at construction
// rather than at first use.
type Config struct {
	Secret string        // HMAC signing secret, required
	TTL    time.Duration // token lifetime, DefaultTTL when zero
}

// Claims are the verified contents of a session token.
type Claims struct {
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies session tokens with HMAC-SHA256.
type Issuer struct {
	secret  []byte
	ttl     time.Duration
	nowTime func() time.Time
}

// IssuerOption modifies an Issuer.
type IssuerOption func(*Issuer)

// WithNowTime sets the clock function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

// NewIssuer creates an Issuer from cfg. The secret is required; a zero TTL
// falls back to DefaultTTL.
func NewIssuer(cfg Config, options ...IssuerOption) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("[NewIssuer] signing secret is required")
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	issuer := &Issuer{
		secret:  []byte(cfg.Secret),
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(issuer)
	}
	return issuer, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for accountID carrying issue time and expiry. The
// same claims always verify against the same secret regardless of
// issuance order.
func (i *Issuer) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("[Issuer.Issue] account id is required")
	}

	now := i.nowTime()
	claims := jwtlib.MapClaims{
		"sub": accountID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. A structurally valid token past its
// expiry fails with ErrTokenExpired; a tampered, malformed or wrongly
// signed token fails with ErrTokenMalformed. The two are distinguishable
// with errors.Is so callers can choose between re-authenticate and reject.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	parsed, err := jwtlib.Parse(raw, i.verificationKey,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(i.nowTime),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrTokenMalformed
	}
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	return &Claims{
		AccountID: sub,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

func (i *Issuer) verificationKey(t *jwtlib.Token) (any, error) {
	if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return i.secret, nil
}
