package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stefando/aadClaimsAWS/internal/auth"
	"github.com/stefando/aadClaimsAWS/internal/config"
	"github.com/stefando/aadClaimsAWS/internal/logging"
)

var (
	username string
	password string
	verify   bool
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "claimcheck",
	Short: "Sign in to the user pool and check the AAD claims in the access token",
	Long: `claimcheck logs a user in with USER_PASSWORD_AUTH, which runs the pre token
generation trigger, and reports the aad:groups, custom:AadGroups and email
claims of the issued access token.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.ClaimCheck
		if err := config.ParseEnv(&cfg); err != nil {
			return err
		}
		if password == "" {
			password = cfg.Password
		}

		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return run(ctx, cmd.OutOrStdout(), cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "user to sign in as")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "password (default $CLAIMCHECK_PASSWORD)")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "verify the token signature against the pool's JWKS")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	_ = rootCmd.MarkFlagRequired("username")
}

func run(ctx context.Context, out io.Writer, cfg config.ClaimCheck, logger *zap.Logger) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	loginService := auth.NewLoginService(awsCfg, cfg.ClientID)
	tokens, err := loginService.Authenticate(ctx, &auth.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	logger.Debug("Signed in", zap.String("username", username), zap.Int32("expiresIn", tokens.ExpiresIn))

	var claims *auth.AccessTokenClaims
	if verify {
		verifier, err := auth.NewVerifier(ctx, cfg.Issuer(), cfg.ClientID)
		if err != nil {
			return err
		}
		claims, err = verifier.Verify(ctx, tokens.AccessToken)
		if err != nil {
			return err
		}
	} else {
		claims, err = auth.ParseAccessToken(tokens.AccessToken)
		if err != nil {
			return err
		}
	}

	return report(out, claims)
}

// Report is what claimcheck prints for a token
type Report struct {
	Username        string   `json:"username"`
	AadGroups       string   `json:"aad:groups"`
	CustomAadGroups string   `json:"custom:AadGroups"`
	Email           string   `json:"email"`
	Groups          []string `json:"groups"`
}

// report prints the injected claims and returns the consistency check result
func report(out io.Writer, claims *auth.AccessTokenClaims) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Report{
		Username:        claims.Username,
		AadGroups:       claims.AadGroups,
		CustomAadGroups: claims.CustomAadGroups,
		Email:           claims.Email,
		Groups:          claims.Groups(),
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := claims.Check(); err != nil {
		return fmt.Errorf("access token claims check failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
