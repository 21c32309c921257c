package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier checks access tokens against a user pool's published keys
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	clientID string
}

// NewVerifier discovers the issuer's keys. Access tokens carry client_id
// instead of aud, so the audience check is done on client_id by Verify.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider for issuer %s: %w", issuer, err)
	}

	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{SkipClientIDCheck: true}),
		clientID: clientID,
	}, nil
}

// Verify checks signature, expiry and issuer, then decodes the claims
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*AccessTokenClaims, error) {
	token, err := v.verifier.Verify(ctx, stripBearerPrefix(tokenString))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	var claims AccessTokenClaims
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}

	if v.clientID != "" && claims.ClientID != v.clientID {
		return nil, ErrClientMismatch
	}
	return &claims, nil
}
