package auth

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// Ensure the SDK client implements IdentityAPI interface at compile time
var _ IdentityAPI = (*cognitoidentityprovider.Client)(nil)

// NewCognitoIdentity builds a Cognito Identity Provider client for region.
func NewCognitoIdentity(ctx context.Context, region string) (*cognitoidentityprovider.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cognitoidentityprovider.NewFromConfig(cfg), nil
}
