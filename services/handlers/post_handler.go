package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/harborview-realty/estate_api/dto"
	"github.com/harborview-realty/estate_api/shared"
)

type PostHandler struct {
	postSvc PostServiceInterface
}

func NewPostHandler(postSvc PostServiceInterface) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// @Summary List posts
// @Description List published blog posts, newest first
// @Tags posts
// @Accept json
// @Produce json
// @Param tag query string false "Filter by tag slug"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Success 200 {object} shared.Response{data=dto.PostCollectionResponse}
// @Router /api/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	var req dto.PostListRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.ErrBadRequest("Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.postSvc.List(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a post
// @Description Get a single published post by slug
// @Tags posts
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} shared.Response{data=dto.PostResponse}
// @Router /api/posts/{slug} [get]
func (h *PostHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return shared.ErrBadRequest("Slug is required")
	}

	resp, err := h.postSvc.GetBySlug(slug)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List tags
// @Description List all post tags
// @Tags posts
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.TagResponse}
// @Router /api/tags [get]
func (h *PostHandler) ListTags(c *fiber.Ctx) error {
	resp, err := h.postSvc.ListTags()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Create a post
// @Description Create a new blog post
// @Tags posts
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param postRequest body dto.UpsertPostRequest true "Post details"
// @Success 201 {object} shared.Response{data=dto.PostResponse}
// @Router /api/admin/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpsertPostRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.postSvc.Create(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Post created", resp)
}

// @Summary Update a post
// @Description Update an existing blog post
// @Tags posts
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Post ID"
// @Param postRequest body dto.UpsertPostRequest true "Post details"
// @Success 200 {object} shared.Response{data=dto.PostResponse}
// @Router /api/admin/posts/{id} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpsertPostRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.postSvc.Update(id, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Post updated", resp)
}

// @Summary Delete a post
// @Description Delete a blog post
// @Tags posts
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Post ID"
// @Success 200 {object} shared.Response
// @Router /api/admin/posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.postSvc.Delete(id); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Post deleted", nil)
}
