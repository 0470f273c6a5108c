package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/regrada-ai/regrada-auth/internal/api/handlers"
	apimiddleware "github.com/regrada-ai/regrada-auth/internal/api/middleware"
	"github.com/regrada-ai/regrada-auth/internal/auth"
	"github.com/regrada-ai/regrada-auth/internal/callback"
	"github.com/regrada-ai/regrada-auth/internal/config"
	"github.com/regrada-ai/regrada-auth/internal/storage"
	"github.com/regrada-ai/regrada-auth/internal/storage/memory"
	"github.com/regrada-ai/regrada-auth/internal/storage/postgres"
	redisstore "github.com/regrada-ai/regrada-auth/internal/storage/redis"

	_ "github.com/regrada-ai/regrada-auth/docs" // Swagger docs
)

// @title Regrada Auth API
// @version 1.0
// @description Session-backed sign-in, registration and Google federation over Amazon Cognito

// @contact.name API Support
// @contact.email support@regrada.ai

// @license.name MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Redis backs rate limiting whenever it is reachable, and the token
	// store when selected.
	var redisClient *redis.Client
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		if cfg.TokenStoreBackend == config.BackendRedis {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("⚠ Redis unavailable, rate limiting disabled: %v", err)
		client.Close()
	} else {
		redisClient = client
		log.Println("✓ Connected to Redis")
	}

	var (
		backend storage.Backend
		db      *bun.DB
	)
	switch cfg.TokenStoreBackend {
	case config.BackendRedis:
		backend = redisstore.NewBackend(redisClient, cfg.SessionTTL)
	case config.BackendPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DatabaseURL)))
		db = bun.NewDB(sqldb, pgdialect.New())

		if cfg.GinMode == gin.DebugMode {
			db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
		}

		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		log.Println("✓ Connected to PostgreSQL")

		pg := postgres.NewBackend(db)
		if err := pg.CreateSchema(ctx); err != nil {
			log.Fatalf("Failed to create session_tokens table: %v", err)
		}
		backend = pg
	default:
		backend = memory.NewBackend()
	}
	log.Printf("✓ Token store: %s", cfg.TokenStoreBackend)

	var identity auth.IdentityAPI
	if cfg.AuthMode == config.AuthModeMock {
		identity = auth.NewMockIdentity(auth.DefaultMockAuthFile)
		log.Printf("⚠ Using mock identity provider (%s)", auth.DefaultMockAuthFile)
	} else {
		identity, err = auth.NewCognitoIdentity(ctx, cfg.Region)
		if err != nil {
			log.Fatalf("Failed to initialize Cognito client: %v", err)
		}
		log.Println("✓ Cognito identity provider initialized")
	}

	controller := auth.NewController(cfg, identity, nil)
	registry := callback.NewRegistry(func(sessionID string) *callback.Handler {
		store := storage.NewTokenStore(backend, sessionID)
		return callback.NewHandler(controller.WithStore(store), store, callback.WithPaths(cfg.LoginPath, cfg.HomePath))
	}, cfg.SessionTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(controller, registry)
	oauthHandler := handlers.NewOAuthHandler(controller, registry, cfg.SecureCookies)
	healthHandler := handlers.NewHealthHandler(backend, redisClient)

	// Initialize middleware
	sessionMiddleware := apimiddleware.NewSessionMiddleware(backend, cfg.SessionTTL, cfg.SecureCookies)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(redisClient, cfg.RateLimitRPM)

	// Setup Gin router
	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.Use(apimiddleware.NewCORSMiddleware(cfg.CORSAllowOrigins, cfg.GinMode == gin.ReleaseMode))

	// Swagger documentation
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no session required)
	r.GET("/health", healthHandler.Health)

	sessions := r.Group("")
	sessions.Use(sessionMiddleware.Attach())
	{
		// OAuth redirects
		sessions.GET("/auth/google", oauthHandler.Google)
		sessions.GET("/callback", oauthHandler.Callback)

		authRoutes := sessions.Group("/v1/auth")
		authRoutes.Use(rateLimitMiddleware.Limit())
		{
			authRoutes.POST("/signup", authHandler.SignUp)
			authRoutes.POST("/confirm", authHandler.ConfirmSignUp)
			authRoutes.POST("/signin", authHandler.SignIn)
			authRoutes.POST("/signout", authHandler.SignOut)
			authRoutes.GET("/session", authHandler.Session)
		}
	}

	// Start server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		log.Printf("🚀 Server starting on port %s (mode: %s)", cfg.Port, cfg.GinMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if db != nil {
		db.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	log.Println("Server stopped")
}
