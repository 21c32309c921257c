package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// ErrChallengeRequired is returned when Cognito answers a login with a
// challenge (new password, MFA) instead of tokens
var ErrChallengeRequired = errors.New("authentication challenge required")

// InitiateAuthAPI is the part of the Cognito client used by LoginService
type InitiateAuthAPI interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

// LoginService handles authentication against a Cognito app client
type LoginService struct {
	cognitoClient InitiateAuthAPI
	clientID      string
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response with tokens
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int32  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// NewLoginService creates a login service for the given app client
func NewLoginService(cfg aws.Config, clientID string) *LoginService {
	return NewLoginServiceWithClient(cognitoidentityprovider.NewFromConfig(cfg), clientID)
}

// NewLoginServiceWithClient creates a login service on an existing client
func NewLoginServiceWithClient(client InitiateAuthAPI, clientID string) *LoginService {
	return &LoginService{
		cognitoClient: client,
		clientID:      clientID,
	}
}

// Authenticate performs a USER_PASSWORD_AUTH login. Cognito runs the pre
// token generation trigger while issuing the returned tokens.
func (s *LoginService) Authenticate(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.clientID),
		AuthParameters: map[string]string{
			"USERNAME": req.Username,
			"PASSWORD": req.Password,
		},
	}

	result, err := s.cognitoClient.InitiateAuth(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if result.AuthenticationResult == nil {
		if result.ChallengeName != "" {
			return nil, fmt.Errorf("%w: %s", ErrChallengeRequired, result.ChallengeName)
		}
		return nil, fmt.Errorf("unexpected authentication response")
	}

	response := &LoginResponse{
		TokenType: "Bearer",
		ExpiresIn: result.AuthenticationResult.ExpiresIn,
	}
	if result.AuthenticationResult.AccessToken != nil {
		response.AccessToken = *result.AuthenticationResult.AccessToken
	}
	if result.AuthenticationResult.IdToken != nil {
		response.IDToken = *result.AuthenticationResult.IdToken
	}
	if result.AuthenticationResult.RefreshToken != nil {
		response.RefreshToken = *result.AuthenticationResult.RefreshToken
	}

	return response, nil
}
