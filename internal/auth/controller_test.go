package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/regrada-auth/internal/storage"
	"github.com/regrada-ai/regrada-auth/internal/storage/memory"
)

// stubIdentity records the last input of each call and answers with the
// configured outputs.
type stubIdentity struct {
	initiateInput *cognitoidentityprovider.InitiateAuthInput
	signUpInput   *cognitoidentityprovider.SignUpInput
	confirmInput  *cognitoidentityprovider.ConfirmSignUpInput

	initiateOutput *cognitoidentityprovider.InitiateAuthOutput
	signUpOutput   *cognitoidentityprovider.SignUpOutput
	err            error
}

func (s *stubIdentity) InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	s.initiateInput = params
	return s.initiateOutput, s.err
}

func (s *stubIdentity) SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	s.signUpInput = params
	return s.signUpOutput, s.err
}

func (s *stubIdentity) ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error) {
	s.confirmInput = params
	return &cognitoidentityprovider.ConfirmSignUpOutput{}, s.err
}

func TestSignIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success persists tokens", func(t *testing.T) {
		t.Parallel()

		identity := &stubIdentity{
			initiateOutput: &cognitoidentityprovider.InitiateAuthOutput{
				AuthenticationResult: &types.AuthenticationResultType{
					IdToken:      aws.String("id"),
					AccessToken:  aws.String("access"),
					RefreshToken: aws.String("refresh"),
				},
			},
		}
		store := storage.NewTokenStore(memory.NewBackend(), "s")
		ctrl := NewController(testConfig("auth.example.com"), identity, nil).WithStore(store)

		tokens, err := ctrl.SignIn(ctx, "user@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, storage.TokenSet{IDToken: "id", AccessToken: "access", RefreshToken: "refresh"}, tokens)

		require.Equal(t, types.AuthFlowTypeUserPasswordAuth, identity.initiateInput.AuthFlow)
		require.Equal(t, "client-123", aws.ToString(identity.initiateInput.ClientId))
		require.Equal(t, map[string]string{
			"USERNAME": "user@example.com",
			"PASSWORD": "password123",
		}, identity.initiateInput.AuthParameters)

		require.Equal(t, map[storage.Field]string{
			storage.FieldIDToken:      "id",
			storage.FieldAccessToken:  "access",
			storage.FieldRefreshToken: "refresh",
		}, readAll(t, store))
	})

	t.Run("provider error is surfaced", func(t *testing.T) {
		t.Parallel()

		providerErr := &smithy.GenericAPIError{Code: "NotAuthorizedException", Message: "Incorrect username or password."}
		identity := &stubIdentity{err: providerErr}
		store := storage.NewTokenStore(memory.NewBackend(), "s")
		ctrl := NewController(testConfig("auth.example.com"), identity, nil).WithStore(store)

		_, err := ctrl.SignIn(ctx, "user@example.com", "wrong")
		require.ErrorIs(t, err, ErrAuthRejected)

		var apiErr smithy.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "NotAuthorizedException", apiErr.ErrorCode())
		require.Equal(t, "NotAuthorizedException", ProviderCode(err))
		require.Equal(t, "Incorrect username or password.", ProviderMessage(err))
		require.Empty(t, readAll(t, store))
	})

	t.Run("challenge is rejected", func(t *testing.T) {
		t.Parallel()

		identity := &stubIdentity{
			initiateOutput: &cognitoidentityprovider.InitiateAuthOutput{
				ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
			},
		}
		store := storage.NewTokenStore(memory.NewBackend(), "s")
		ctrl := NewController(testConfig("auth.example.com"), identity, nil).WithStore(store)

		_, err := ctrl.SignIn(ctx, "user@example.com", "password123")
		require.ErrorIs(t, err, ErrAuthRejected)
		require.Contains(t, err.Error(), "NEW_PASSWORD_REQUIRED")
		require.Empty(t, readAll(t, store))
	})

	t.Run("client secret adds secret hash", func(t *testing.T) {
		t.Parallel()

		identity := &stubIdentity{
			initiateOutput: &cognitoidentityprovider.InitiateAuthOutput{
				AuthenticationResult: &types.AuthenticationResultType{AccessToken: aws.String("a")},
			},
		}
		cfg := testConfig("auth.example.com")
		cfg.ClientSecret = "s3cret"
		store := storage.NewTokenStore(memory.NewBackend(), "s")
		ctrl := NewController(cfg, identity, nil).WithStore(store)

		_, err := ctrl.SignIn(ctx, "user@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t,
			computeSecretHash("user@example.com", "client-123", "s3cret"),
			identity.initiateInput.AuthParameters["SECRET_HASH"],
		)
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("email is username and attribute", func(t *testing.T) {
		t.Parallel()

		identity := &stubIdentity{
			signUpOutput: &cognitoidentityprovider.SignUpOutput{
				UserSub:       aws.String("sub-1"),
				UserConfirmed: false,
				CodeDeliveryDetails: &types.CodeDeliveryDetailsType{
					DeliveryMedium: types.DeliveryMediumTypeEmail,
					Destination:    aws.String("u***@example.com"),
				},
			},
		}
		ctrl := NewController(testConfig("auth.example.com"), identity, nil)

		result, err := ctrl.SignUp(ctx, "user@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, &RegistrationResult{
			UserSub:                 "sub-1",
			CodeDeliveryDestination: "u***@example.com",
			CodeDeliveryMedium:      "EMAIL",
		}, result)

		require.Equal(t, "user@example.com", aws.ToString(identity.signUpInput.Username))
		require.Len(t, identity.signUpInput.UserAttributes, 1)
		require.Equal(t, "email", aws.ToString(identity.signUpInput.UserAttributes[0].Name))
		require.Equal(t, "user@example.com", aws.ToString(identity.signUpInput.UserAttributes[0].Value))
		require.Nil(t, identity.signUpInput.SecretHash)
	})

	t.Run("rejection", func(t *testing.T) {
		t.Parallel()

		identity := &stubIdentity{err: &smithy.GenericAPIError{Code: "UsernameExistsException", Message: "User already exists"}}
		ctrl := NewController(testConfig("auth.example.com"), identity, nil)

		_, err := ctrl.SignUp(ctx, "user@example.com", "password123")
		require.ErrorIs(t, err, ErrRegistrationRejected)
		require.Equal(t, "User already exists", ProviderMessage(err))
	})
}

func TestConfirmSignUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	identity := &stubIdentity{}
	ctrl := NewController(testConfig("auth.example.com"), identity, nil)

	require.NoError(t, ctrl.ConfirmSignUp(ctx, "user@example.com", "123456"))
	require.Equal(t, "123456", aws.ToString(identity.confirmInput.ConfirmationCode))
	require.Equal(t, "user@example.com", aws.ToString(identity.confirmInput.Username))

	identity.err = &smithy.GenericAPIError{Code: "ExpiredCodeException", Message: "Invalid code provided, please request a code again."}
	err := ctrl.ConfirmSignUp(ctx, "user@example.com", "123456")
	require.ErrorIs(t, err, ErrConfirmationRejected)
	require.Equal(t, "ExpiredCodeException", ProviderCode(err))
}

func TestComputeSecretHash(t *testing.T) {
	t.Parallel()

	a := computeSecretHash("user", "client", "secret")
	require.NotEmpty(t, a)
	require.Equal(t, a, computeSecretHash("user", "client", "secret"))
	require.NotEqual(t, a, computeSecretHash("other", "client", "secret"))
}

func TestProviderMessage_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("dial tcp: connection refused")
	require.Equal(t, "dial tcp: connection refused", ProviderMessage(err))
	require.Empty(t, ProviderCode(err))
}
