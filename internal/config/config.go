package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// PreToken configures the pre token generation Lambda
type PreToken struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// FailOnExtractionError makes the handler return extraction failures to
	// Cognito, which then rejects the sign-in. When false the event is passed
	// through unchanged.
	FailOnExtractionError bool `env:"FAIL_ON_EXTRACTION_ERROR" envDefault:"false"`
}

// ClaimCheck configures the claimcheck CLI
type ClaimCheck struct {
	Region     string `env:"AWS_REGION,required,notEmpty"`
	UserPoolID string `env:"COGNITO_POOL_ID,required,notEmpty"`
	ClientID   string `env:"COGNITO_CLIENT_ID,required,notEmpty"`
	Password   string `env:"CLAIMCHECK_PASSWORD"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Issuer returns the OIDC issuer URL of the configured user pool
func (c ClaimCheck) Issuer() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.UserPoolID)
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
