package auth

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// FederatedProvider is the identity provider offered on the hosted sign-in page.
const FederatedProvider = "Google"

// RegistrationResult is what the identity service reports after sign-up.
type RegistrationResult struct {
	UserSub                 string
	UserConfirmed           bool
	CodeDeliveryDestination string
	CodeDeliveryMedium      string
}

// IdentityAPI is the subset of the Cognito Identity Provider API used for
// password authentication and registration.
type IdentityAPI interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
}

// Navigator performs a full browser navigation to an absolute URL.
type Navigator interface {
	Redirect(target string)
}
