package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/service"
)

// tokenType is the fixed token-type label returned with every issued token.
const tokenType = "Bearer"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name                 string `json:"name" form:"name" validate:"required,max=255"`
	Email                string `json:"email" form:"email" validate:"required,email,max=255"`
	Password             string `json:"password" form:"password" validate:"required,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} TokenResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /v1/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: tokenType})
}

// Login godoc
// @Summary Authenticate and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /v1/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: tokenType})
}

// Logout godoc
// @Summary Revoke all of the current user's tokens
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /v1/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, apperrors.MessageResponse{Message: "Logged out successfully"})
}

// respondError renders a domain error through the shared HTTP mapping.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.Body)
}
