package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Access token errors
var (
	ErrInvalidToken   = errors.New("invalid token format")
	ErrNotAccessToken = errors.New("token is not an access token")
	ErrMissingGroups  = errors.New("aad:groups claim missing from token")
	ErrMissingEmail   = errors.New("email claim missing from token")
	ErrGroupsMismatch = errors.New("aad:groups and custom:AadGroups claims differ")
	ErrClientMismatch = errors.New("token was issued to a different client")
)

// AccessTokenClaims are the claims of a Cognito access token, including the
// ones added by the pre token generation trigger
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	TokenUse        string `json:"token_use"`
	ClientID        string `json:"client_id"`
	Username        string `json:"username"`
	AadGroups       string `json:"aad:groups"`
	CustomAadGroups string `json:"custom:AadGroups"`
	Email           string `json:"email"`
}

// ParseAccessToken decodes an access token without validating its signature.
// Use a Verifier when the token comes from an untrusted source.
func ParseAccessToken(tokenString string) (*AccessTokenClaims, error) {
	tokenString = stripBearerPrefix(tokenString)

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &AccessTokenClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Groups splits the delimited aad:groups claim. Azure AD attribute mappings
// deliver either "a,b" or "[a, b]".
func (c *AccessTokenClaims) Groups() []string {
	raw := strings.TrimSpace(c.AadGroups)
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")

	var groups []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// Check reports whether the injected claims are present and consistent
func (c *AccessTokenClaims) Check() error {
	var errs []error
	if c.TokenUse != "access" {
		errs = append(errs, ErrNotAccessToken)
	}
	if c.AadGroups == "" {
		errs = append(errs, ErrMissingGroups)
	}
	if c.Email == "" {
		errs = append(errs, ErrMissingEmail)
	}
	if c.AadGroups != c.CustomAadGroups {
		errs = append(errs, ErrGroupsMismatch)
	}
	return errors.Join(errs...)
}

// stripBearerPrefix removes a case insensitive "Bearer " prefix
func stripBearerPrefix(token string) string {
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		return token[7:]
	}
	return token
}
