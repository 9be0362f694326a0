package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"profile-service/pkg/phone"
)

var (
	ErrMissingToken      = errors.New("missing bearer token")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrMissingPhoneClaim = errors.New("token carries no phone claim")
	ErrMissingPhone      = errors.New("missing phone number")
)

// Credentials holds everything a request can present to identify its caller.
// Handlers fill it; which field matters depends on the resolver in use.
type Credentials struct {
	BearerToken  string
	TrustedPhone string
}

// Resolver produces the caller's normalized phone number or fails with one
// of the sentinel errors above.
type Resolver interface {
	Resolve(ctx context.Context, creds Credentials) (string, error)
}

// TokenResolver requires a verified bearer credential. Verification failures
// of any kind surface as ErrInvalidToken; provider detail never leaks.
type TokenResolver struct {
	verifier TokenVerifier
	timeout  time.Duration
}

func NewTokenResolver(verifier TokenVerifier, timeout time.Duration) *TokenResolver {
	return &TokenResolver{verifier: verifier, timeout: timeout}
}

func (r *TokenResolver) Resolve(ctx context.Context, creds Credentials) (string, error) {
	if creds.BearerToken == "" {
		return "", ErrMissingToken
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	claims, err := r.verifier.Verify(ctx, creds.BearerToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Phone == "" {
		return "", ErrMissingPhoneClaim
	}

	normalized, err := phone.Normalize(claims.Phone)
	if err != nil {
		return "", ErrMissingPhoneClaim
	}
	return normalized, nil
}

// TrustedResolver takes the caller-supplied phone at face value. Development
// and test only; selected once at startup, never per request.
type TrustedResolver struct{}

func (TrustedResolver) Resolve(ctx context.Context, creds Credentials) (string, error) {
	if strings.TrimSpace(creds.TrustedPhone) == "" {
		return "", ErrMissingPhone
	}

	normalized, err := phone.Normalize(creds.TrustedPhone)
	if err != nil {
		return "", ErrMissingPhone
	}
	return normalized, nil
}

// BearerFromHeader extracts the token from an Authorization header value.
// Returns "" when the header is absent or not a bearer scheme.
func BearerFromHeader(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
