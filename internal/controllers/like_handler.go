package controllers

import (
	"github.com/gofiber/fiber/v2"

	mid "github.com/valeryfun/mern-dev-connector/internal/middleware"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

// PUT /posts/like/:id

// LikePost godoc
// @Summary      Like a post
// @Description  Adds the caller to the front of the likes list. A user can like a post once.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {array}   models.Like
// @Failure      400  {object}  dto.ErrorResponse  "Post already liked"
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/like/{id} [put]
func (h *PostHandler) LikePost(c *fiber.Ctx) error {
	uid, err := mid.UIDObjectID(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "id", services.ErrPostNotFound)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	likes, err := h.Service.LikePost(ctx, uid, postID)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(likes)
}

// PUT /posts/unlike/:id

// UnlikePost godoc
// @Summary      Unlike a post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {array}   models.Like
// @Failure      400  {object}  dto.ErrorResponse  "Post has not yet been liked"
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/unlike/{id} [put]
func (h *PostHandler) UnlikePost(c *fiber.Ctx) error {
	uid, err := mid.UIDObjectID(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "id", services.ErrPostNotFound)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	likes, err := h.Service.UnlikePost(ctx, uid, postID)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(likes)
}
