package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mealboard/mealboard/internal/config"
	httpserver "github.com/mealboard/mealboard/internal/http"
	"github.com/mealboard/mealboard/pkg/access"
	"github.com/mealboard/mealboard/pkg/account"
	"github.com/mealboard/mealboard/pkg/catalog"
	"github.com/mealboard/mealboard/pkg/lifecycle"
	"github.com/mealboard/mealboard/pkg/repository"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	// Initialize repositories
	usersRepo := repository.NewUsersRepository(db)
	storesRepo := repository.NewStoresRepository(db)
	membershipsRepo := repository.NewMembershipsRepository(db)
	menusRepo := repository.NewMenusRepository(db)
	menuItemsRepo := repository.NewMenuItemsRepository(db)
	foodItemsRepo := repository.NewFoodItemsRepository(db)
	photosRepo := repository.NewPhotosRepository(db)
	deviceTokensRepo := repository.NewDeviceTokensRepository(db)

	// Initialize services
	authzService := access.NewAuthorizationService(logger, membershipsRepo)
	memberService := access.NewMemberService(logger, membershipsRepo, usersRepo, storesRepo)
	cascadeService := lifecycle.NewCascadeService(
		logger,
		storesRepo,
		usersRepo,
		membershipsRepo,
		menusRepo,
		menuItemsRepo,
		foodItemsRepo,
		photosRepo,
		deviceTokensRepo,
	)
	storeService := catalog.NewStoreService(logger, repository.DB{DB: db}, storesRepo, membershipsRepo, authzService, cascadeService)
	menuService := catalog.NewMenuService(logger, db, menusRepo, menuItemsRepo, foodItemsRepo, authzService)
	foodItemService := catalog.NewFoodItemService(logger, db, foodItemsRepo, menuItemsRepo, photosRepo, authzService)
	photoService := catalog.NewPhotoService(logger, db, photosRepo, foodItemsRepo, authzService)
	userService := account.NewUserService(logger, db, usersRepo, cascadeService)
	deviceService := account.NewDeviceService(logger, deviceTokensRepo)

	// Create router
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:          logger,
		StoreService:    storeService,
		MenuService:     menuService,
		FoodItemService: foodItemService,
		PhotoService:    photoService,
		MemberService:   memberService,
		UserService:     userService,
		DeviceService:   deviceService,
		JWTSecret:       []byte(cfg.JWTSecret),
		JWTIssuer:       cfg.JWTIssuer,
		RateLimitConfig: cfg.RateLimit,
		Validation:      cfg.Validation,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
