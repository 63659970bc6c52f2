package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/resource"
	"shopapi/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// StorePostRequest represents a post creation request.
type StorePostRequest struct {
	ProductID *uint  `json:"product_id" form:"product_id" validate:"required"`
	Content   string `json:"content" form:"content" validate:"required,max=255"`
}

// UpdatePostRequest represents a partial post update.
type UpdatePostRequest struct {
	Content *string `json:"content" form:"content" validate:"omitempty,max=255"`
}

// Index godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} resource.PostCollection
// @Failure 401 {object} errors.MessageResponse
// @Router /v1/posts [get]
func (h *PostHandler) Index(c echo.Context) error {
	page := pageParam(c)

	posts, total, err := h.postService.List(c.Request().Context(), page)
	if err != nil {
		return respondError(c, err)
	}

	meta := resource.NewMeta(page, service.PageSize, total)
	return c.JSON(http.StatusOK, resource.NewPostCollection(posts, meta))
}

// Store godoc
// @Summary Create a post attached to a product
// @Tags posts
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param request body StorePostRequest true "Post data"
// @Success 201 {object} resource.Post
// @Failure 401 {object} errors.MessageResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /v1/posts [post]
func (h *PostHandler) Store(c echo.Context) error {
	var req StorePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	image, err := imageUpload(c)
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.postService.Create(c.Request().Context(), service.CreatePostInput{
		ProductID: *req.ProductID,
		Content:   req.Content,
		Image:     image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, resource.NewPost(post))
}

// Show godoc
// @Summary Fetch a single post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} resource.Post
// @Failure 404 {object} errors.MessageResponse
// @Router /v1/posts/{id} [get]
func (h *PostHandler) Show(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrPostNotFound)
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, resource.NewPost(post))
}

// Update godoc
// @Summary Update a post on a product owned by the current user
// @Tags posts
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} resource.Post
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /v1/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := idParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrPostNotFound)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	image, err := imageUpload(c)
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.postService.Update(c.Request().Context(), user.ID, id, service.UpdatePostInput{
		Content: req.Content,
		Image:   image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, resource.NewPost(post))
}

// Destroy godoc
// @Summary Delete a post on a product owned by the current user
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /v1/posts/{id} [delete]
func (h *PostHandler) Destroy(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := idParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrPostNotFound)
	}

	if err := h.postService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
