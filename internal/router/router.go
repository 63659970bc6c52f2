package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenService *auth.TokenService,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = validation.New()

	e.GET("/healthcheck", healthHandler.Healthcheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Serve uploaded images so image_url links resolve.
	e.Static("/storage", cfg.UploadDir)

	v1 := e.Group("/v1")
	v1.GET("", healthHandler.Index)

	// Public routes
	v1.POST("/register", authHandler.Register)
	v1.POST("/login", authHandler.Login)

	// Secured routes (require a valid bearer token)
	secured := v1.Group("", auth.Middleware(tokenService))

	secured.POST("/logout", authHandler.Logout)

	// Product routes
	secured.GET("/products", productHandler.Index)
	secured.POST("/products", productHandler.Store)
	secured.GET("/products/:id", productHandler.Show)
	secured.PUT("/products/:id", productHandler.Update)
	secured.PATCH("/products/:id", productHandler.Update)
	secured.DELETE("/products/:id", productHandler.Destroy)

	// Post routes
	secured.GET("/posts", postHandler.Index)
	secured.POST("/posts", postHandler.Store)
	secured.GET("/posts/:id", postHandler.Show)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.PATCH("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Destroy)
}
