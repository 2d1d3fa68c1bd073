package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yungbote/scrapbook-backend/internal/chat"
	redisclient "github.com/yungbote/scrapbook-backend/internal/clients/redis"
	"github.com/yungbote/scrapbook-backend/internal/db"
	"github.com/yungbote/scrapbook-backend/internal/handlers"
	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/middleware"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/server"
	"github.com/yungbote/scrapbook-backend/internal/services"
	"github.com/yungbote/scrapbook-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis
	statsCache, err := redisclient.NewStatsCache(log)
	if err != nil {
		log.Error("Redis init failed", "error", err)
		os.Exit(1)
	}
	defer statsCache.Close()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	movieRepo := repos.NewMovieRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	watchLaterRepo := repos.NewWatchLaterRepo(thePG, log)
	watchEntryRepo := repos.NewWatchEntryRepo(thePG, log)
	messageRepo := repos.NewMessageRepo(thePG, log)

	// Chat hub
	log.Info("Setting up chat hub now...")
	chatHub := chat.NewHub(log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, userTokenRepo, reviewRepo, watchLaterRepo, watchEntryRepo, messageRepo)
	movieService := services.NewMovieService(thePG, log, movieRepo)
	reviewService := services.NewReviewService(thePG, log, movieRepo, reviewRepo)
	watchlistService := services.NewWatchlistService(thePG, log, movieRepo, watchLaterRepo, watchEntryRepo)
	analyticsService := services.NewAnalyticsService(log, reviewRepo, watchLaterRepo, watchEntryRepo, statsCache)
	chatService := services.NewChatService(thePG, log, messageRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	movieHandler := handlers.NewMovieHandler(movieService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	chatHandler := handlers.NewChatHandler(log, chatHub, chatService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		UserHandler:      userHandler,
		MovieHandler:     movieHandler,
		ReviewHandler:    reviewHandler,
		WatchlistHandler: watchlistHandler,
		AnalyticsHandler: analyticsHandler,
		ChatHandler:      chatHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
