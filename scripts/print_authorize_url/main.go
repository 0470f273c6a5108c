package main

import (
	"fmt"
	"log"

	"github.com/regrada-ai/regrada-auth/internal/auth"
	"github.com/regrada-ai/regrada-auth/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	controller := auth.NewController(cfg, nil, nil)

	fmt.Println("Hosted sign-in domain:", cfg.DomainURL())
	fmt.Println("Redirect URI:", cfg.RedirectSignIn)
	fmt.Println("")
	fmt.Println("🔗 Open this URL to sign in with Google:")
	fmt.Println(controller.FederatedSignInURL())
}
