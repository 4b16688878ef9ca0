package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/database"
	"github.com/jobdeck/jobdeck/internal/handlers"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Identity providers: only the ones with configured credentials exist.
	providers := auth.NewRegistry()
	if cfg.GoogleEnabled() {
		providers.Register(auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.CallbackURL(models.ProviderGoogle)))
	}
	if cfg.GithubEnabled() {
		providers.Register(auth.NewGithubProvider(cfg.GithubClientID, cfg.GithubClientSecret, cfg.CallbackURL(models.ProviderGithub)))
	}
	if len(providers.Names()) == 0 {
		log.Println("No identity provider credentials configured, sign-in is disabled")
	} else {
		log.Println("Identity providers enabled:", providers.Names())
	}

	sessions := auth.NewSessionManager(db, cfg.SessionTTL)
	accountService := services.NewAccountService(db)
	userService := services.NewUserService(db)
	applicationService := services.NewApplicationService(db)
	aiService := services.NewAIService(context.Background(), cfg.GeminiAPIKey)

	authHandler := handlers.NewAuthHandler(providers, accountService, sessions, cfg)
	userHandler := handlers.NewUserHandler(userService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	aiHandler := handlers.NewAIHandler(aiService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler(cfg.IsProduction()))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ResolveUser(db, sessions))

	r.GET("/health", handlers.HealthCheck)

	authRoutes := r.Group("/auth")
	{
		authRoutes.GET("/me", authHandler.Me)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/:provider", authHandler.Begin)
		authRoutes.GET("/:provider/callback", authHandler.Callback)
	}

	applications := r.Group("/applications", middleware.RequireAuth())
	{
		applications.GET("", applicationHandler.List)
		applications.POST("", applicationHandler.Create)
		applications.GET("/stats/overview", applicationHandler.Stats)
		applications.GET("/:id", applicationHandler.Get)
		applications.PUT("/:id", applicationHandler.Update)
		applications.DELETE("/:id", applicationHandler.Delete)
	}

	user := r.Group("/user", middleware.RequireAuth())
	{
		user.GET("/profile", userHandler.GetProfile)
		user.PUT("/profile", userHandler.UpdateProfile)
		user.PUT("/info", userHandler.UpdateInfo)
	}

	ai := r.Group("/ai", middleware.RequireAuth())
	{
		ai.POST("/generate-resume", aiHandler.GenerateResume)
		ai.POST("/generate-cover-letter", aiHandler.GenerateCoverLetter)
		ai.POST("/optimize-keywords", aiHandler.OptimizeKeywords)
	}

	log.Println("Server starting on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
