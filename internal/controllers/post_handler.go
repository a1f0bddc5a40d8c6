package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/valeryfun/mern-dev-connector/dto"
	mid "github.com/valeryfun/mern-dev-connector/internal/middleware"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

type PostHandler struct {
	Service *services.PostService
	Log     logrus.FieldLogger
	Timeout time.Duration
}

func NewPostHandler(svc *services.PostService, log logrus.FieldLogger, timeout time.Duration) *PostHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostHandler{Service: svc, Log: log, Timeout: timeout}
}

func (h *PostHandler) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.Timeout)
}

// objectIDParam parses a path id. A malformed id can never match a document,
// so it is reported as notFound instead of a server error.
func objectIDParam(c *fiber.Ctx, name string, notFound error) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return bson.NilObjectID, notFound
	}
	return oid, nil
}

// POST /posts

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post authored by the caller. Name and avatar are copied from the caller's profile.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body      dto.CreatePostReq  true  "Post payload"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	uid, err := mid.UIDObjectID(c)
	if err != nil {
		return err
	}

	var body dto.CreatePostReq
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

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.CreatePost(ctx, uid, body.Text)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(post)
}

// GET /posts

// ListPosts godoc
// @Summary      List posts
// @Description  All posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Post
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	posts, err := h.Service.ListPosts(ctx)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(posts)
}

// GET /posts/:id

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  models.Post
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id", services.ErrPostNotFound)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	post, err := h.Service.GetPost(ctx, postID)
	if err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(post)
}

// DELETE /posts/:id

// DeletePost godoc
// @Summary      Delete a post
// @Description  Only the author can delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
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

	if err := h.Service.DeletePost(ctx, uid, postID); err != nil {
		return handleServiceError(c, h.Log, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Post removed"})
}
