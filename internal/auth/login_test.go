package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	input  *cognitoidentityprovider.InitiateAuthInput
	output *cognitoidentityprovider.InitiateAuthOutput
	err    error
}

func (f *fakeCognito) InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	f.input = params
	return f.output, f.err
}

func TestAuthenticate(t *testing.T) {
	fake := &fakeCognito{output: &cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken:  aws.String("access"),
			IdToken:      aws.String("id"),
			RefreshToken: aws.String("refresh"),
			ExpiresIn:    3600,
		},
	}}
	svc := NewLoginServiceWithClient(fake, "client-1")

	resp, err := svc.Authenticate(context.Background(), &LoginRequest{Username: "jdoe", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, &LoginResponse{
		AccessToken:  "access",
		IDToken:      "id",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		TokenType:    "Bearer",
	}, resp)
	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, fake.input.AuthFlow)
	assert.Equal(t, "client-1", aws.ToString(fake.input.ClientId))
	assert.Equal(t, map[string]string{"USERNAME": "jdoe", "PASSWORD": "pw"}, fake.input.AuthParameters)
}

func TestAuthenticateErrors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeCognito
		req  LoginRequest
		want error
	}{
		{
			name: "missing password",
			fake: &fakeCognito{},
			req:  LoginRequest{Username: "jdoe"},
		},
		{
			name: "cognito error",
			fake: &fakeCognito{err: errors.New("NotAuthorizedException")},
			req:  LoginRequest{Username: "jdoe", Password: "pw"},
		},
		{
			name: "challenge",
			fake: &fakeCognito{output: &cognitoidentityprovider.InitiateAuthOutput{
				ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
			}},
			req:  LoginRequest{Username: "jdoe", Password: "pw"},
			want: ErrChallengeRequired,
		},
		{
			name: "empty result",
			fake: &fakeCognito{output: &cognitoidentityprovider.InitiateAuthOutput{}},
			req:  LoginRequest{Username: "jdoe", Password: "pw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLoginServiceWithClient(tt.fake, "client-1")
			_, err := svc.Authenticate(context.Background(), &tt.req)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
