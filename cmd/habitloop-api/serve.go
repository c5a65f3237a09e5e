package main

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/habitloop/backend/internal/config"
	"github.com/habitloop/backend/internal/handlers"
	"github.com/habitloop/backend/internal/logger"
	"github.com/habitloop/backend/internal/middleware"
	"github.com/habitloop/backend/internal/repository"
	"github.com/habitloop/backend/internal/service"
	"github.com/habitloop/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local development convenience; absent .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting habitloop api",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	habitRepo := repository.NewHabitRepository(supabaseClient)
	logRepo := repository.NewHabitLogRepository(supabaseClient)
	userRepo := repository.NewUserRepository(supabaseClient)

	defaultTZ := cfg.Server.DefaultTimezone
	habitService := service.NewHabitService(habitRepo, logRepo, userRepo, defaultTZ)
	statsService := service.NewStatsService(habitRepo, logRepo, userRepo, defaultTZ)
	userService := service.NewUserService(userRepo, defaultTZ)
	authService := service.NewAuthService(supabaseClient, userRepo, log)

	habitHandler := handlers.NewHabitHandler(habitService)
	statsHandler := handlers.NewStatsHandler(statsService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	var corsOrigins []string
	if cfg.Server.CORSOrigins != "" {
		corsOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.Auth(supabaseClient), authHandler.Me)
		}

		// Stats are public so habit widgets can be embedded anywhere
		stats := v1.Group("/stats")
		{
			stats.GET("/habits/:id/count", statsHandler.GetCompletionCount)
			stats.GET("/habits/:id/streak", statsHandler.GetStreak)
			stats.GET("/habits/:id/goal", statsHandler.GetGoalStats)
			stats.GET("/habits/:id/weeks", statsHandler.GetWeeklyCounts)
			stats.GET("/histogram", statsHandler.GetHistogram)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			protected.GET("/habits", habitHandler.GetHabits)
			protected.POST("/habits", habitHandler.CreateHabit)
			protected.PUT("/habits/reorder", habitHandler.ReorderHabits)
			protected.GET("/habits/:id", habitHandler.GetHabit)
			protected.PATCH("/habits/:id", habitHandler.UpdateHabit)
			protected.DELETE("/habits/:id", habitHandler.DeleteHabit)
			protected.POST("/habits/:id/toggle", habitHandler.ToggleLog)
			protected.GET("/habits/:id/logged", habitHandler.GetLoggedOn)

			protected.GET("/users/me/configuration", userHandler.GetConfiguration)
			protected.PUT("/users/me/timezone", userHandler.UpdateTimezone)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
