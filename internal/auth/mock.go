package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

const DefaultMockAuthFile = "data/mock_auth_data.json"

// Ensure MockIdentity implements IdentityAPI interface at compile time
var _ IdentityAPI = (*MockIdentity)(nil)

// MockIdentity is a mock identity service for local development
// It simulates Cognito behavior without making actual AWS calls
type MockIdentity struct {
	users map[string]*mockUser // email -> user
	path  string
	mu    sync.RWMutex
}

type mockUser struct {
	Sub         string `json:"sub"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Confirmed   bool   `json:"confirmed"`
	ConfirmCode string `json:"confirm_code"`
}

// NewMockIdentity creates a mock backed by the JSON file at path. An empty
// path keeps everything in memory.
func NewMockIdentity(path string) *MockIdentity {
	m := &MockIdentity{
		users: make(map[string]*mockUser),
		path:  path,
	}
	m.load()
	return m
}

func mockError(code, message string) error {
	return &smithy.GenericAPIError{
		Code:    code,
		Message: message,
		Fault:   smithy.FaultClient,
	}
}

// InitiateAuth checks the password of a confirmed user and issues mock tokens
func (m *MockIdentity) InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	if params.AuthFlow != types.AuthFlowTypeUserPasswordAuth {
		return nil, mockError("InvalidParameterException", fmt.Sprintf("Unsupported auth flow: %s", params.AuthFlow))
	}

	email := params.AuthParameters["USERNAME"]
	password := params.AuthParameters["PASSWORD"]

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[email]
	if !exists || user.Password != password {
		return nil, mockError("NotAuthorizedException", "Incorrect username or password.")
	}
	if !user.Confirmed {
		return nil, mockError("UserNotConfirmedException", "User is not confirmed.")
	}

	fmt.Printf("[MOCK AUTH] User signed in: %s\n", email)

	return &cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			IdToken:      aws.String(generateToken()),
			AccessToken:  aws.String(generateToken()),
			RefreshToken: aws.String(generateToken()),
			ExpiresIn:    3600,
			TokenType:    aws.String("Bearer"),
		},
	}, nil
}

// SignUp creates a new unconfirmed mock user
func (m *MockIdentity) SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	email := aws.ToString(params.Username)
	password := aws.ToString(params.Password)

	if len(password) < 8 {
		return nil, mockError("InvalidPasswordException", "Password did not conform with policy: Password not long enough")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[email]; exists {
		return nil, mockError("UsernameExistsException", "User already exists")
	}

	user := &mockUser{
		Sub:         uuid.New().String(),
		Email:       email,
		Password:    password,
		ConfirmCode: generateRandomCode(6),
	}
	m.users[email] = user
	m.save()

	fmt.Printf("[MOCK AUTH] User signed up: %s (code: %s)\n", email, user.ConfirmCode)

	return &cognitoidentityprovider.SignUpOutput{
		UserSub:       aws.String(user.Sub),
		UserConfirmed: false,
		CodeDeliveryDetails: &types.CodeDeliveryDetailsType{
			AttributeName:  aws.String("email"),
			DeliveryMedium: types.DeliveryMediumTypeEmail,
			Destination:    aws.String(maskEmail(email)),
		},
	}, nil
}

// ConfirmSignUp confirms a user whose code matches
func (m *MockIdentity) ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error) {
	email := aws.ToString(params.Username)

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[email]
	if !exists {
		return nil, mockError("UserNotFoundException", "Username/client id combination not found.")
	}
	if user.ConfirmCode != aws.ToString(params.ConfirmationCode) {
		return nil, mockError("CodeMismatchException", "Invalid verification code provided, please try again.")
	}

	user.Confirmed = true
	m.save()
	fmt.Printf("[MOCK AUTH] User confirmed: %s\n", email)

	return &cognitoidentityprovider.ConfirmSignUpOutput{}, nil
}

// ConfirmationCode returns the pending confirmation code of a user.
func (m *MockIdentity) ConfirmationCode(email string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[email]
	if !exists {
		return "", false
	}
	return user.ConfirmCode, true
}

// Helper functions

func generateToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func generateRandomCode(length int) string {
	const digits = "0123456789"
	b := make([]byte, length)
	for i := range b {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		b[i] = digits[n.Int64()]
	}
	return string(b)
}

func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return email
	}
	return local[:1] + "***@" + domain
}

// persistedData is the structure saved to disk
type persistedData struct {
	Users map[string]*mockUser `json:"users"`
}

// save persists mock auth data to disk (must be called with lock held)
func (m *MockIdentity) save() {
	if m.path == "" {
		return
	}

	data := persistedData{Users: m.users}
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Printf("[MOCK AUTH] Failed to marshal data: %v\n", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		fmt.Printf("[MOCK AUTH] Failed to create data directory: %v\n", err)
		return
	}

	if err := os.WriteFile(m.path, bytes, 0600); err != nil {
		fmt.Printf("[MOCK AUTH] Failed to save data: %v\n", err)
		return
	}
}

// load restores mock auth data from disk
func (m *MockIdentity) load() {
	if m.path == "" {
		return
	}

	bytes, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("[MOCK AUTH] Failed to read data: %v\n", err)
		}
		return
	}

	var data persistedData
	if err := json.Unmarshal(bytes, &data); err != nil {
		fmt.Printf("[MOCK AUTH] Failed to unmarshal data: %v\n", err)
		return
	}

	if data.Users != nil {
		m.users = data.Users
	}

	fmt.Printf("[MOCK AUTH] Loaded %d users from %s\n", len(m.users), m.path)
}
