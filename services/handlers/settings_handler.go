package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/shared"
)

type SettingsHandler struct {
	settingsSvc SettingsServiceInterface
}

func NewSettingsHandler(settingsSvc SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsSvc: settingsSvc,
	}
}

// @Summary Get site settings
// @Description Get the public site settings
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=model.SiteSettings}
// @Router /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsSvc.Get()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", settings)
}

// @Summary Update site settings
// @Description Update site settings, only non-empty fields are applied
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param settingsRequest body dto.UpdateSettingsRequest true "Settings fields"
// @Success 200 {object} shared.Response{data=model.SiteSettings}
// @Router /api/admin/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	settings, err := h.settingsSvc.Update(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Settings updated", settings)
}
