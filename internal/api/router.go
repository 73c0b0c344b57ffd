package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/weslymega/testefeirastudio-sub000/internal/api/handlers"
	"github.com/weslymega/testefeirastudio-sub000/internal/api/middleware"
	"github.com/weslymega/testefeirastudio-sub000/internal/cep"
	"github.com/weslymega/testefeirastudio-sub000/internal/config"
	"github.com/weslymega/testefeirastudio-sub000/internal/email"
	"github.com/weslymega/testefeirastudio-sub000/internal/fipe"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
	"github.com/weslymega/testefeirastudio-sub000/internal/storage"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
	"github.com/weslymega/testefeirastudio-sub000/internal/tasks"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, st *store.Store, taskClient tasks.Enqueuer, sender email.Sender) *gin.Engine {
	// Initialize services needed by API handlers HERE
	userService := services.NewUserService(st, cfg, sender)
	listingService := services.NewListingService(st)
	moderationService := services.NewModerationService(st)
	bannerService := services.NewBannerService(st)
	notificationService := services.NewNotificationService(st)
	promotionService := services.NewPromotionService(cfg)
	enquiryService := services.NewEnquiryService(listingService, notificationService)

	fipeClient := fipe.NewClient(cfg.FipeBaseURL, cfg.LookupTimeout)
	cepClient := cep.NewClient(cfg.CepBaseURL, cfg.LookupTimeout)

	s3StorageService, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize S3 storage for API: %v", err)
	}

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters): the maintenance gate
	// needs the optional identity to exempt admins.
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())
	r.Use(middleware.OptionalAuthMiddleware(cfg.JwtSecret))
	r.Use(middleware.MaintenanceMiddleware(moderationService))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	listingHandler := handlers.NewListingHandler(listingService, moderationService)
	adminHandler := handlers.NewAdminHandler(moderationService, bannerService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	enquiryHandler := handlers.NewEnquiryHandler(cfg, enquiryService, listingService, taskClient)
	lookupHandler := handlers.NewLookupHandler(fipeClient, cepClient, bannerService, promotionService)
	mediaHandler := handlers.NewMediaHandler(s3StorageService, taskClient)
	wizardHandler := handlers.NewWizardHandler(listingService, userService, promotionService)

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Auth routes (exempt from the maintenance gate)
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/forgot-password", authHandler.ForgotPassword)
		v1.POST("/auth/reset-password", authHandler.ResetPassword)

		// Public view routes
		v1.GET("/listings", listingHandler.GetPool)
		v1.GET("/listings/featured", listingHandler.GetFeatured)
		v1.GET("/listings/fair", listingHandler.GetFair)
		v1.GET("/listings/:id", listingHandler.GetListingByID)
		v1.GET("/banners/:channel", lookupHandler.GetEligibleBanners)
		v1.GET("/plans", lookupHandler.GetPlans)

		// External lookups
		v1.GET("/fipe/:vehicle_type/brands", lookupHandler.GetBrands)
		v1.GET("/fipe/:vehicle_type/brands/:brand/models", lookupHandler.GetModels)
		v1.GET("/fipe/:vehicle_type/brands/:brand/models/:model/years", lookupHandler.GetYears)
		v1.GET("/fipe/:vehicle_type/brands/:brand/models/:model/years/:year", lookupHandler.GetDetail)
		v1.GET("/cep/:code", lookupHandler.GetAddress)

		// Authenticated Routes
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.GET("/profile", authHandler.GetProfile)
			authRequired.PUT("/profile", authHandler.UpdateProfile)

			authRequired.GET("/me/listings", listingHandler.GetOwned)
			authRequired.GET("/me/favorites", listingHandler.GetFavorites)

			authRequired.POST("/listings", listingHandler.SubmitListing)
			authRequired.DELETE("/listings/:id", listingHandler.DeleteListing)
			authRequired.POST("/listings/:id/favorite", listingHandler.ToggleFavorite)
			authRequired.POST("/listings/:id/fair", listingHandler.ToggleFairPresence)
			authRequired.POST("/listings/:id/enquiry", enquiryHandler.SendEnquiry)

			authRequired.POST("/reports", listingHandler.CreateReport)

			authRequired.GET("/notifications", notificationHandler.List)
			authRequired.POST("/notifications/:id/read", notificationHandler.MarkRead)
			authRequired.POST("/notifications/read-all", notificationHandler.MarkAllRead)

			authRequired.POST("/media/presign", mediaHandler.Presign)
			authRequired.POST("/media/confirm", mediaHandler.ConfirmUpload)

			authRequired.POST("/wizard", wizardHandler.Start)
			authRequired.GET("/wizard/:id", wizardHandler.GetState)
			authRequired.POST("/wizard/:id/step", wizardHandler.Submit)
			authRequired.POST("/wizard/:id/back", wizardHandler.Back)
			authRequired.POST("/wizard/:id/finish", wizardHandler.Finish)
		}

		// Admin Routes
		adminRequired := v1.Group("/admin")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.GET("/listings", adminHandler.GetModerationPool)
			adminRequired.POST("/listings/:id/status", adminHandler.ChangeListingStatus)

			adminRequired.GET("/reports", adminHandler.GetReports)
			adminRequired.POST("/reports/:id/resolve", adminHandler.ResolveReport)
			adminRequired.GET("/reports/:id/listing", adminHandler.GetReportedListing)

			adminRequired.GET("/banners/:channel", adminHandler.GetBanners)
			adminRequired.POST("/banners", adminHandler.UpsertBanner)
			adminRequired.DELETE("/banners/:channel/:id", adminHandler.DeactivateBanner)

			adminRequired.GET("/flags", adminHandler.GetFlags)
			adminRequired.PUT("/flags", adminHandler.SetFlags)

			adminRequired.POST("/users/:id/suspend", adminHandler.SuspendUser)
			adminRequired.POST("/reset", adminHandler.ResetAll)
		}
	}

	return r
}

// SetupServiceRouter configures the out-of-band service engine used by test
// tooling: it can fetch mock emails stored in Redis and trigger shutdown.
func SetupServiceRouter(cfg *config.Config, rdb *redis.Client, shutdownChan chan<- struct{}) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.POST("/service/shutdown", func(c *gin.Context) {
		log.Println("Received shutdown command via Service API")
		c.JSON(http.StatusOK, gin.H{"success": true, "result": "Shutdown initiated"})
		select {
		case shutdownChan <- struct{}{}:
		default:
		}
	})

	r.GET("/service/mockemail/:to/:kind", func(c *gin.Context) {
		key := "mockemail:" + c.Param("to") + ":" + c.Param("kind")
		data, err := rdb.Get(c.Request.Context(), key).Result()
		if err == redis.Nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Test email not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Redis error"})
			return
		}
		rdb.Del(c.Request.Context(), key)
		c.Data(http.StatusOK, "application/json", []byte(data))
	})

	return r
}
