package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/valeryfun/mern-dev-connector/dto"
	mid "github.com/valeryfun/mern-dev-connector/internal/middleware"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

// POST /posts/comment/:id

// AddComment godoc
// @Summary      Comment on a post
// @Description  Prepends a comment by the caller and returns the post's comments
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Post ID (hex)"
// @Param        data  body      dto.CreateCommentReq  true  "Comment payload"
// @Success      200   {array}   models.Comment
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /posts/comment/{id} [post]
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	uid, err := mid.UIDObjectID(c)
	if err != nil {
		return err
	}

	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return writeMsg(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Text = strings.TrimSpace(body.Text)
	if err := validate.Struct(&body); err != nil {
		if resp, ok := validationErrors(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		return handleServiceError(c, h.Log, err)
	}

	postID, err := objectIDParam(c, "id", services.ErrPostNotFound)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	comments, err := h.Service.AddComment(ctx, uid, postID, body.Text)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(comments)
}

// DELETE /posts/comment/:id/:comment_id

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Only the comment's author can delete it. The comment is addressed by its own id.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true  "Post ID (hex)"
// @Param        comment_id  path      string  true  "Comment ID (hex)"
// @Success      200         {array}   models.Comment
// @Failure      401         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c *fiber.Ctx) error {
	uid, err := mid.UIDObjectID(c)
	if err != nil {
		return err
	}
	postID, err := objectIDParam(c, "id", services.ErrPostNotFound)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	commentID, err := objectIDParam(c, "comment_id", services.ErrCommentNotFound)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	comments, err := h.Service.DeleteComment(ctx, uid, postID, commentID)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(comments)
}
