package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/resource"
	"shopapi/internal/service"
	"shopapi/internal/storage"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
	storageBaseURL string
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, storageBaseURL string) *ProductHandler {
	return &ProductHandler{productService: productService, storageBaseURL: storageBaseURL}
}

// StoreProductRequest represents a product creation request.
type StoreProductRequest struct {
	Name        string   `json:"name" form:"name" validate:"required,max=255"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price" validate:"required,gte=0"`
}

// UpdateProductRequest represents a partial product update. Absent fields
// are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" form:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
}

// Index godoc
// @Summary List products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} resource.ProductCollection
// @Failure 401 {object} errors.MessageResponse
// @Router /v1/products [get]
func (h *ProductHandler) Index(c echo.Context) error {
	page := pageParam(c)

	products, total, err := h.productService.List(c.Request().Context(), page)
	if err != nil {
		return respondError(c, err)
	}

	meta := resource.NewMeta(page, service.PageSize, total)
	return c.JSON(http.StatusOK, resource.NewProductCollection(products, h.storageBaseURL, meta))
}

// Store godoc
// @Summary Create a product owned by the current user
// @Tags products
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param request body StoreProductRequest true "Product data"
// @Success 201 {object} resource.Product
// @Failure 401 {object} errors.MessageResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /v1/products [post]
func (h *ProductHandler) Store(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	var req StoreProductRequest
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

	product, err := h.productService.Create(c.Request().Context(), user.ID, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(*req.Price),
		Image:       image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, resource.NewProduct(product, h.storageBaseURL))
}

// Show godoc
// @Summary Fetch a single product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} resource.Product
// @Failure 404 {object} errors.MessageResponse
// @Router /v1/products/{id} [get]
func (h *ProductHandler) Show(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, resource.NewProduct(product, h.storageBaseURL))
}

// Update godoc
// @Summary Update a product owned by the current user
// @Tags products
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} resource.Product
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := idParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	var req UpdateProductRequest
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

	in := service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		in.Price = &price
	}

	product, err := h.productService.Update(c.Request().Context(), user.ID, id, in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, resource.NewProduct(product, h.storageBaseURL))
}

// Destroy godoc
// @Summary Delete a product owned by the current user
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /v1/products/{id} [delete]
func (h *ProductHandler) Destroy(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := idParam(c)
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	if err := h.productService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// idParam parses the :id route parameter.
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// pageParam parses the page query parameter, defaulting to the first page.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// imageUpload reads the optional "image" part of a multipart request.
// Non-multipart requests simply have no image.
func imageUpload(c echo.Context) (*storage.Upload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	return storage.ReadImage(fh, "image")
}
