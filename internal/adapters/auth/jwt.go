package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

const issuer = "patitas"

// TokenIssuer signs HS256 session tokens. It implements ports.TokenIssuer.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the shared secret and lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenIssuer{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token whose subject is the user ID.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := t.now()
	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(user.ID).
		IssuedAt(now).
		Expiration(now.Add(t.ttl)).
		Claim("email", user.Email).
		Claim("nombre", user.Name).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, t.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks the signature, issuer and expiry and returns the subject.
func (t *TokenIssuer) Verify(token string) (string, error) {
	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, t.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
		jwt.WithClock(jwt.ClockFunc(t.now)),
	)
	if err != nil {
		return "", err
	}
	if tok.Subject() == "" {
		return "", errors.New("token has no subject")
	}
	return tok.Subject(), nil
}
