package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/regrada-auth/internal/storage"
	"github.com/regrada-ai/regrada-auth/internal/storage/memory"
)

func TestMockIdentity_RegistrationAndSignIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mock := NewMockIdentity("")
	store := storage.NewTokenStore(memory.NewBackend(), "s")
	ctrl := NewController(testConfig("auth.example.com"), mock, nil).WithStore(store)

	result, err := ctrl.SignUp(ctx, "dev@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, result.UserSub)
	require.False(t, result.UserConfirmed)
	require.Equal(t, "d***@example.com", result.CodeDeliveryDestination)

	_, err = ctrl.SignUp(ctx, "dev@example.com", "password123")
	require.ErrorIs(t, err, ErrRegistrationRejected)
	require.Equal(t, "UsernameExistsException", ProviderCode(err))

	_, err = ctrl.SignIn(ctx, "dev@example.com", "password123")
	require.ErrorIs(t, err, ErrAuthRejected)
	require.Equal(t, "UserNotConfirmedException", ProviderCode(err))

	err = ctrl.ConfirmSignUp(ctx, "dev@example.com", "not-the-code")
	require.ErrorIs(t, err, ErrConfirmationRejected)
	require.Equal(t, "CodeMismatchException", ProviderCode(err))

	code, ok := mock.ConfirmationCode("dev@example.com")
	require.True(t, ok)
	require.NoError(t, ctrl.ConfirmSignUp(ctx, "dev@example.com", code))

	_, err = ctrl.SignIn(ctx, "dev@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrAuthRejected)
	require.Equal(t, "NotAuthorizedException", ProviderCode(err))

	tokens, err := ctrl.SignIn(ctx, "dev@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)

	ok, err = store.HasAccessToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMockIdentity_PasswordPolicy(t *testing.T) {
	t.Parallel()

	ctrl := NewController(testConfig("auth.example.com"), NewMockIdentity(""), nil)
	_, err := ctrl.SignUp(context.Background(), "dev@example.com", "short")
	require.ErrorIs(t, err, ErrRegistrationRejected)
	require.Equal(t, "InvalidPasswordException", ProviderCode(err))
}

func TestMockIdentity_Persistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "data", "mock_auth_data.json")

	first := NewMockIdentity(path)
	ctrl := NewController(testConfig("auth.example.com"), first, nil)
	_, err := ctrl.SignUp(ctx, "dev@example.com", "password123")
	require.NoError(t, err)

	code, ok := first.ConfirmationCode("dev@example.com")
	require.True(t, ok)

	second := NewMockIdentity(path)
	reloaded, ok := second.ConfirmationCode("dev@example.com")
	require.True(t, ok)
	require.Equal(t, code, reloaded)
}
