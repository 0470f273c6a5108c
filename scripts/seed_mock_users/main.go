package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/regrada-ai/regrada-auth/internal/auth"
	"github.com/regrada-ai/regrada-auth/internal/config"
)

func main() {
	email := "dev@regrada.ai"
	password := "password123"
	if len(os.Args) >= 3 {
		email = os.Args[1]
		password = os.Args[2]
	} else if len(os.Args) == 2 {
		fmt.Println("Usage: go run ./scripts/seed_mock_users [<email> <password>]")
		os.Exit(1)
	}

	ctx := context.Background()
	mock := auth.NewMockIdentity(auth.DefaultMockAuthFile)
	controller := auth.NewController(&config.Config{ClientID: "mock-client"}, mock, nil)

	fmt.Println("🌱 Seeding mock identity provider...")

	result, err := controller.SignUp(ctx, email, password)
	if err != nil {
		if auth.ProviderCode(err) == "UsernameExistsException" {
			fmt.Printf("✅ User already exists: %s\n", email)
			return
		}
		log.Fatalf("Failed to sign up %s: %v", email, err)
	}
	fmt.Printf("✅ User created: %s (sub: %s)\n", email, result.UserSub)

	code, ok := mock.ConfirmationCode(email)
	if !ok {
		log.Fatalf("No confirmation code recorded for %s", email)
	}
	if err := controller.ConfirmSignUp(ctx, email, code); err != nil {
		log.Fatalf("Failed to confirm %s: %v", email, err)
	}
	fmt.Println("✅ User confirmed")

	fmt.Println("")
	fmt.Println("Sign in with:")
	fmt.Printf("  email:    %s\n", email)
	fmt.Printf("  password: %s\n", password)
	fmt.Println("")
	fmt.Println("Start the server with AUTH_MODE=mock to use this account.")
}
