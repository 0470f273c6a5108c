package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"golang.org/x/oauth2"

	"github.com/regrada-ai/regrada-auth/internal/config"
	"github.com/regrada-ai/regrada-auth/internal/storage"
)

// Controller runs the sign-in, registration and OAuth flows against the
// identity service. A successful flow writes the bound TokenStore and
// nothing else.
type Controller struct {
	identity     IdentityAPI
	oauth        *oauth2.Config
	revokeURL    string
	clientSecret string
	httpClient   *http.Client
	store        *storage.TokenStore
}

func NewController(cfg *config.Config, identity IdentityAPI, httpClient *http.Client) *Controller {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	base := cfg.DomainURL()
	return &Controller{
		identity: identity,
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectSignIn,
			Scopes:      []string{"openid"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth2/authorize",
				TokenURL:  base + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		revokeURL:    base + "/oauth2/revoke",
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
	}
}

// WithStore returns a copy of the controller that persists into store.
func (c *Controller) WithStore(store *storage.TokenStore) *Controller {
	bound := *c
	bound.store = store
	return &bound
}

// SignIn exchanges a username and password for tokens.
func (c *Controller) SignIn(ctx context.Context, username, password string) (storage.TokenSet, error) {
	input := &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(c.oauth.ClientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	}

	if c.clientSecret != "" {
		input.AuthParameters["SECRET_HASH"] = computeSecretHash(username, c.oauth.ClientID, c.clientSecret)
	}

	result, err := c.identity.InitiateAuth(ctx, input)
	if err != nil {
		log.Printf("Error signing in: %v", err)
		return storage.TokenSet{}, fmt.Errorf("%w: %w", ErrAuthRejected, err)
	}

	if result.AuthenticationResult == nil {
		return storage.TokenSet{}, fmt.Errorf("%w: challenge required: %s", ErrAuthRejected, result.ChallengeName)
	}

	tokens := storage.TokenSet{
		IDToken:      aws.ToString(result.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(result.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(result.AuthenticationResult.RefreshToken),
	}
	if err := c.store.Save(ctx, tokens); err != nil {
		return storage.TokenSet{}, err
	}

	return tokens, nil
}

// SignUp registers a new account using the email as the username.
func (c *Controller) SignUp(ctx context.Context, email, password string) (*RegistrationResult, error) {
	input := &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(c.oauth.ClientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(email),
			},
		},
	}

	if c.clientSecret != "" {
		input.SecretHash = aws.String(computeSecretHash(email, c.oauth.ClientID, c.clientSecret))
	}

	output, err := c.identity.SignUp(ctx, input)
	if err != nil {
		log.Printf("Error signing up: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrRegistrationRejected, err)
	}

	result := &RegistrationResult{
		UserSub:       aws.ToString(output.UserSub),
		UserConfirmed: output.UserConfirmed,
	}
	if output.CodeDeliveryDetails != nil {
		result.CodeDeliveryDestination = aws.ToString(output.CodeDeliveryDetails.Destination)
		result.CodeDeliveryMedium = string(output.CodeDeliveryDetails.DeliveryMedium)
	}

	log.Printf("Sign up success: %s (confirmed: %t)", result.UserSub, result.UserConfirmed)
	return result, nil
}

// ConfirmSignUp submits the confirmation code sent after sign-up.
func (c *Controller) ConfirmSignUp(ctx context.Context, username, code string) error {
	input := &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(c.oauth.ClientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	}

	if c.clientSecret != "" {
		input.SecretHash = aws.String(computeSecretHash(username, c.oauth.ClientID, c.clientSecret))
	}

	if _, err := c.identity.ConfirmSignUp(ctx, input); err != nil {
		log.Printf("Error confirming sign up: %v", err)
		return fmt.Errorf("%w: %w", ErrConfirmationRejected, err)
	}

	log.Printf("User confirmed successfully: %s", username)
	return nil
}

// SignOut revokes the refresh token when one is stored and then clears the
// store. It never fails; revocation problems are logged.
func (c *Controller) SignOut(ctx context.Context) {
	refreshToken, _, err := c.store.Read(ctx, storage.FieldRefreshToken)
	if err != nil {
		log.Printf("SignOut: %v", err)
	}

	if refreshToken != "" {
		if err := c.revoke(ctx, refreshToken); err != nil {
			log.Printf("%v, continuing with local sign out", err)
		}
	}

	if err := c.store.Clear(ctx); err != nil {
		log.Printf("SignOut: %v", err)
	}
}
