package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/shared"
)

type PropertyHandler struct {
	propertySvc PropertyServiceInterface
}

func NewPropertyHandler(propertySvc PropertyServiceInterface) *PropertyHandler {
	return &PropertyHandler{
		propertySvc: propertySvc,
	}
}

// @Summary List properties
// @Description List published properties with optional filters, featured first
// @Tags properties
// @Accept json
// @Produce json
// @Param status query string false "Listing status"
// @Param type query string false "Property type"
// @Param city query string false "City"
// @Param featured query bool false "Featured only"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} shared.Response{data=dto.PropertyCollectionResponse}
// @Router /api/properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	var req dto.PropertyListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.ErrBadRequest("Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.propertySvc.List(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a property
// @Description Get a single property by slug
// @Tags properties
// @Accept json
// @Produce json
// @Param slug path string true "Property slug"
// @Success 200 {object} shared.Response{data=dto.PropertyResponse}
// @Router /api/properties/{slug} [get]
func (h *PropertyHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return shared.ErrBadRequest("Slug is required")
	}

	resp, err := h.propertySvc.GetBySlug(slug)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Create a property
// @Description Create a new property listing
// @Tags properties
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param propertyRequest body dto.UpsertPropertyRequest true "Property details"
// @Success 201 {object} shared.Response{data=dto.PropertyResponse}
// @Router /api/admin/properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var req dto.UpsertPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.propertySvc.Create(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Property created", resp)
}

// @Summary Update a property
// @Description Update an existing property listing
// @Tags properties
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Property ID"
// @Param propertyRequest body dto.UpsertPropertyRequest true "Property details"
// @Success 200 {object} shared.Response{data=dto.PropertyResponse}
// @Router /api/admin/properties/{id} [put]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpsertPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.propertySvc.Update(id, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Property updated", resp)
}

// @Summary Delete a property
// @Description Delete a property listing
// @Tags properties
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Property ID"
// @Success 200 {object} shared.Response
// @Router /api/admin/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.propertySvc.Delete(id); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Property deleted", nil)
}
