package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/valeryfun/mern-dev-connector/dto"
	"github.com/valeryfun/mern-dev-connector/internal/logger"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

const (
	MsgPostNotFound    = "Post not found"
	MsgCommentNotFound = "Comment does not exist"
	MsgUserNotFound    = "User not found"
	MsgNotAuthorized   = "User not authorized"
	MsgAlreadyLiked    = "Post already liked"
	MsgNotLiked        = "Post has not yet been liked"
	MsgServerError     = "Server Error"
)

// handleServiceError maps service errors to responses. Anything unexpected
// is logged and reported as an opaque 500.
func handleServiceError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var valErr *services.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &valErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Errors: []dto.FieldError{{Msg: valErr.Message, Param: valErr.Field}},
		})
	case errors.As(err, &fiberErr):
		return fiberErr
	case errors.Is(err, services.ErrPostNotFound):
		return writeMsg(c, fiber.StatusNotFound, MsgPostNotFound)
	case errors.Is(err, services.ErrCommentNotFound):
		return writeMsg(c, fiber.StatusNotFound, MsgCommentNotFound)
	case errors.Is(err, services.ErrUserNotFound):
		return writeMsg(c, fiber.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, services.ErrNotAuthorized):
		return writeMsg(c, fiber.StatusUnauthorized, MsgNotAuthorized)
	case errors.Is(err, services.ErrAlreadyLiked):
		return writeMsg(c, fiber.StatusBadRequest, MsgAlreadyLiked)
	case errors.Is(err, services.ErrNotLiked):
		return writeMsg(c, fiber.StatusBadRequest, MsgNotLiked)
	default:
		log.WithFields(logrus.Fields{
			"request_id": logger.RequestID(c),
			"path":       c.Path(),
		}).WithError(err).Error("request failed")
		return writeMsg(c, fiber.StatusInternalServerError, MsgServerError)
	}
}

func writeMsg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Msg: msg})
}

// ErrorHandler renders errors that escape handlers and middleware, such as
// the 401s raised by the auth middleware, in the same {"msg"} shape.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return writeMsg(c, fiberErr.Code, fiberErr.Message)
		}
		log.WithFields(logrus.Fields{
			"request_id": logger.RequestID(c),
			"path":       c.Path(),
		}).WithError(err).Error("unhandled error")
		return writeMsg(c, fiber.StatusInternalServerError, MsgServerError)
	}
}
