package routes

import (
	"time"

	"sprintops-backend/internal/api/handlers"
	"sprintops-backend/internal/api/middleware"
	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/config"
	"sprintops-backend/internal/repository"
	"sprintops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	teamRepo := repository.NewTeamRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	bugRepo := repository.NewBugRepository(db)

	// Initialize services
	authService := auth.NewAuthService(teamRepo, userRepo, validator, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	taskService := service.NewTaskService(taskRepo, validator)
	bugService := service.NewBugService(bugRepo, validator)
	memberService := service.NewMemberService(userRepo, taskRepo, validator)
	statsService := service.NewStatsService(taskRepo, bugRepo)

	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	bugHandler := handlers.NewBugHandler(bugService)
	memberHandler := handlers.NewMemberHandler(memberService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// Team-scoped routes, all behind the session middleware
	api := router.Group("")
	api.Use(authMiddleware.RequireAuth())
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		bugs := api.Group("/bugs")
		{
			bugs.GET("", bugHandler.ListBugs)
			bugs.POST("", bugHandler.CreateBug)
			bugs.GET("/:id", bugHandler.GetBug)
			bugs.PATCH("/:id", bugHandler.UpdateBug)
			bugs.DELETE("/:id", bugHandler.DeleteBug)
		}

		team := api.Group("/team")
		{
			team.GET("", memberHandler.ListMembers)
			team.POST("", memberHandler.AddMember)
			team.PATCH("/:id", memberHandler.UpdateMember)
			team.DELETE("/:id", memberHandler.RemoveMember)
		}

		stats := api.Group("/stats")
		{
			stats.GET("", statsHandler.GetStats)
			stats.GET("/analytics", statsHandler.GetAnalytics)
		}
	}

	return router
}
