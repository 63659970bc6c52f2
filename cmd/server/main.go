package main

import (
	"log"
	"net/http"

	_ "shopapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopapi/internal/auth"
	"shopapi/internal/cache"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/handler"
	"shopapi/internal/model"
	"shopapi/internal/repository"
	"shopapi/internal/router"
	"shopapi/internal/service"
	"shopapi/internal/storage"
)

// @title Product & Post API
// @version 1.0
// @description CRUD API for products and posts with bearer token authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and an access token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Product{},
		&model.Post{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	uploadStore := storage.NewLocalStore(cfg.UploadDir)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(tokenRepo, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	productService := service.NewProductService(productRepo, uploadStore)
	postService := service.NewPostService(postRepo, productRepo, uploadStore)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(gormDB, cacheClient)
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService, cfg.StorageBaseURL)
	postHandler := handler.NewPostHandler(postService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		healthHandler,
		authHandler,
		productHandler,
		postHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
