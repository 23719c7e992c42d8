package routes

import (
	"time"

	"nutrition-app-server/internal/config"
	"nutrition-app-server/internal/foodapi"
	"nutrition-app-server/internal/handlers"
	"nutrition-app-server/internal/metrics"
	"nutrition-app-server/internal/middleware"
	"nutrition-app-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, collector *metrics.Collector) {
	foodClient := foodapi.NewClient(cfg.FoodAPI.BaseURL, time.Duration(cfg.FoodAPI.TimeoutSeconds)*time.Second)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, log)
	userHandler := handlers.NewUserHandler(db)
	anthroHandler := handlers.NewAnthropometryHandler(db, log, collector)
	anamnesisHandler := handlers.NewAnamnesisHandler(db)
	goalHandler := handlers.NewGoalHandler(db)
	diaryHandler := handlers.NewFoodDiaryHandler(db, collector)
	labHandler := handlers.NewLabResultHandler(db)
	consultationHandler := handlers.NewConsultationHandler(db)
	foodHandler := handlers.NewFoodHandler(foodClient, log, collector)

	router.Use(middleware.MetricsMiddleware(collector))

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Listing nutritionists is open to all authenticated users (patients pick one on signup)
			userRoutes.GET("/nutritionists", userHandler.GetNutritionists)

			// Patients of the logged-in nutritionist
			userRoutes.GET("/my-patients", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), userHandler.GetMyPatients)
			userRoutes.POST("/my-patients", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), userHandler.AssignPatient)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Anthropometry routes
		anthroRoutes := private.Group("/anthropometry")
		{
			// Nutritionists create records (including revisions via supersedesRecordId)
			anthroRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), anthroHandler.CreateRecord)

			// Patient can read their own, nutritionists read their patients' (auth in handler)
			anthroRoutes.GET("/patient/:patientId", anthroHandler.GetRecordsForPatient)
			anthroRoutes.GET("/:id", anthroHandler.GetRecordByID)
			anthroRoutes.GET("/:id/timeline", anthroHandler.GetRecordTimeline)

			// Clinical comparison between two records of the same patient
			anthroRoutes.GET("/compare", anthroHandler.CompareRecords)
			anthroRoutes.GET("/compare/export", anthroHandler.ExportComparison)

			anthroRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), anthroHandler.DeleteRecord)
		}

		// Anamnesis routes
		anamnesisRoutes := private.Group("/anamnesis")
		{
			anamnesisRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), anamnesisHandler.CreateAnamnesis)
			anamnesisRoutes.GET("/patient/:patientId", anamnesisHandler.GetAnamnesesForPatient)
			anamnesisRoutes.GET("/:id", anamnesisHandler.GetAnamnesisByID)
			anamnesisRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), anamnesisHandler.UpdateAnamnesis)
		}

		// Goal routes
		goalRoutes := private.Group("/goals")
		{
			goalRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), goalHandler.CreateGoal)
			goalRoutes.GET("/patient/:patientId", goalHandler.GetGoalsForPatient)
			goalRoutes.PATCH("/:id/status", goalHandler.UpdateGoalStatus)
		}

		// Food diary routes (patients log their own meals)
		mealRoutes := private.Group("/meals")
		{
			mealRoutes.POST("", diaryHandler.LogMeal)
			mealRoutes.GET("", diaryHandler.GetMealsForDay)
			mealRoutes.DELETE("/:id", diaryHandler.DeleteMeal)
			mealRoutes.GET("/progress", diaryHandler.GetProgress)
		}

		// Lab result routes
		labRoutes := private.Group("/lab-results")
		{
			labRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), labHandler.CreateLabResult)
			labRoutes.GET("/patient/:patientId", labHandler.GetLabResultsForPatient)
			labRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleNutritionist, models.RoleAdmin), labHandler.DeleteLabResult)
		}

		// Consultation routes
		consultationRoutes := private.Group("/consultations")
		{
			consultationRoutes.POST("", consultationHandler.CreateConsultation)
			consultationRoutes.GET("", consultationHandler.GetConsultationsForUser)
			consultationRoutes.PATCH("/:id/status", consultationHandler.UpdateConsultationStatus)
			consultationRoutes.PATCH("/:id/reschedule", consultationHandler.RescheduleConsultation)
		}

		// Food database lookups (proxied to the upstream composition API)
		foodRoutes := private.Group("/foods")
		{
			foodRoutes.GET("/search", foodHandler.SearchFoods)
			foodRoutes.GET("/:code", foodHandler.GetFoodByCode)
		}
	}

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
