package app

import (
	"fmt"
	"time"

	"souq_backend/internal/auth"
	"souq_backend/internal/config"
	"souq_backend/internal/database"
	"souq_backend/internal/handlers"
	"souq_backend/internal/imageprocessor"
	"souq_backend/internal/logger"
	"souq_backend/internal/middleware"
	"souq_backend/internal/provider"
	"souq_backend/internal/repositories"
	"souq_backend/internal/routes"
	"souq_backend/internal/services"
	"souq_backend/internal/storage"
	"souq_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, services, and handlers onto a gin engine.
// Split out of Run so tests can assemble the same router.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	tokens := auth.NewTokenManager(cfg.Session.Secret, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	providerClient := provider.New(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	listingRepo := repositories.NewListingRepository(gormDB)

	imageService := services.NewImageService(storageInstance)
	thumbnailer := imageprocessor.NewProcessor(cfg.Upload.ThumbnailSize, cfg.Upload.ImageQuality)
	authService := services.NewAuthService(userRepo, providerClient, tokens)
	listingService := services.NewListingService(listingRepo, userRepo, storageInstance, imageService, thumbnailer, services.ListingConfig{
		MaxFileSize: cfg.Upload.MaxSize,
		MaxFiles:    cfg.Upload.MaxFiles,
	})

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	appHandlers := &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, authService, handlers.SessionCookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: cfg.Session.TTLMinutes * 60,
		}),
		ListingHandler: handlers.NewListingHandler(baseHandler, listingService),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, tokens, cfg.Session.CookieName, storageInstance.BasePath())

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	// Bound multipart memory to roughly one max-size file
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	return router
}
