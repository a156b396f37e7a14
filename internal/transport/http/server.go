package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"jahayeon_backend/internal/config"
	"jahayeon_backend/internal/database"
	"jahayeon_backend/internal/handler"
	"jahayeon_backend/internal/llm"
	"jahayeon_backend/internal/oauth"
	appredis "jahayeon_backend/internal/redis"
	"jahayeon_backend/internal/repository"
	"jahayeon_backend/internal/service"
)

func Run() error {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis (access-token blacklist)
	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()
	blacklist := appredis.NewTokenBlacklist(redisClient)

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	eventRepo := repository.NewEventRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// 5. Services
	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}
	authService := service.NewAuthService(refreshTokenRepo, blacklist, cfg)
	userService := service.NewUserService(userRepo, eventRepo, partyRepo)
	eventService := service.NewEventService(eventRepo, userRepo, imageRepo)
	partyService := service.NewPartyService(partyRepo, userRepo, imageRepo, mediaService)

	// 6. External providers
	googleProvider := oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleRedirectURL)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}

	// 7. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:  handler.NewAuthHandler(userService, authService, googleProvider),
		UserHandler:  handler.NewUserHandler(userService),
		EventHandler: handler.NewEventHandler(eventService),
		PartyHandler: handler.NewPartyHandler(partyService),
		AIHandler:    handler.NewAIHandler(openaiClient, geminiClient),
		JWTSecret:    cfg.JWTSecret,
		Blacklist:    blacklist,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
