package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload a property image
// @Description Upload an image for a property listing
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Property ID"
// @Param image formData file true "Image file (JPG, PNG, WEBP)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/admin/properties/{id}/images [post]
func (h *MediaHandler) UploadPropertyImage(c *fiber.Ctx) error {
	propertyID := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return shared.ErrBadRequest("No image file provided")
	}

	response, err := h.mediaSvc.UploadPropertyImage(propertyID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Image uploaded successfully", response)
}

// @Summary Upload a post cover image
// @Description Upload a cover image for a blog post
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Post ID"
// @Param image formData file true "Image file (JPG, PNG, WEBP)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/admin/posts/{id}/cover [post]
func (h *MediaHandler) UploadPostImage(c *fiber.Ctx) error {
	postID := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return shared.ErrBadRequest("No image file provided")
	}

	response, err := h.mediaSvc.UploadPostImage(postID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Image uploaded successfully", response)
}

// @Summary Delete an image
// @Description Delete a stored image by object key
// @Tags media
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param key query string true "Object key"
// @Success 200 {object} shared.Response
// @Router /api/admin/media [delete]
func (h *MediaHandler) DeleteImage(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return shared.ErrBadRequest("Object key is required")
	}

	if err := h.mediaSvc.DeleteImage(key); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Image deleted", nil)
}
