package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/shared"
)

type ContactHandler struct {
	contactSvc ContactServiceInterface
}

func NewContactHandler(contactSvc ContactServiceInterface) *ContactHandler {
	return &ContactHandler{
		contactSvc: contactSvc,
	}
}

// @Summary Submit a contact inquiry
// @Description Validate, verify reCAPTCHA when configured, store and forward the inquiry by email
// @Tags contact
// @Accept json
// @Produce json
// @Param contactRequest body dto.ContactRequest true "Inquiry details"
// @Success 200 {object} shared.Response{data=dto.ContactResponse}
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contactSvc.Submit(req, c.IP())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Inquiry received", resp)
}

// @Summary List contact submissions
// @Description List stored contact inquiries, newest first
// @Tags contact
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response
// @Router /api/admin/contact [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	submissions, total, err := h.contactSvc.List(page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", fiber.Map{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}
