package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/scrapbook-backend/internal/handlers"
	"github.com/yungbote/scrapbook-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	MovieHandler     *handlers.MovieHandler
	ReviewHandler    *handlers.ReviewHandler
	WatchlistHandler *handlers.WatchlistHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	ChatHandler      *handlers.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/movies", cfg.MovieHandler.ListMovies)
		api.GET("/movies/:movie_id", cfg.MovieHandler.GetMovie)
		api.GET("/movies/:movie_id/reviews", cfg.ReviewHandler.ListMovieReviews)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PATCH("/user", cfg.UserHandler.EditUser)
	protected.POST("/user/reset-password", cfg.UserHandler.ResetPassword)
	protected.DELETE("/user", cfg.UserHandler.DeleteUser)
	// Movies
	protected.POST("/movies", cfg.MovieHandler.AddMovie)
	// Reviews
	protected.GET("/user/reviews", cfg.ReviewHandler.ListUserReviews)
	protected.POST("/movies/:movie_id/reviews", cfg.ReviewHandler.CreateReview)
	protected.PATCH("/reviews/:review_id", cfg.ReviewHandler.UpdateReview)
	protected.DELETE("/reviews/:review_id", cfg.ReviewHandler.DeleteReview)
	// Watch later
	protected.GET("/user/watch-later", cfg.WatchlistHandler.ListWatchLater)
	protected.POST("/user/watch-later/:movie_id", cfg.WatchlistHandler.AddWatchLater)
	protected.DELETE("/user/watch-later/:movie_id", cfg.WatchlistHandler.RemoveWatchLater)
	// Watched log
	protected.GET("/user/watched", cfg.WatchlistHandler.ListWatched)
	protected.POST("/user/watched/:movie_id", cfg.WatchlistHandler.AddWatched)
	protected.DELETE("/user/watched/:movie_id", cfg.WatchlistHandler.RemoveWatched)
	// Analytics
	protected.GET("/user/stats", cfg.AnalyticsHandler.UserStatistics)
	protected.GET("/user/activity", cfg.AnalyticsHandler.RecentActivity)
	protected.GET("/user/genres", cfg.AnalyticsHandler.GenreAnalytics)
	protected.GET("/user/ratings", cfg.AnalyticsHandler.RatingAnalytics)
	protected.GET("/user/watch-history", cfg.AnalyticsHandler.WatchHistory)
	protected.GET("/user/highlights", cfg.AnalyticsHandler.UserHighlights)
	// Chat
	protected.GET("/chat/ws", cfg.ChatHandler.Connect)

	return router
}
