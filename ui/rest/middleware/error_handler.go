package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	pkgError "github.com/shiurnotes/shiurnotes/pkg/error"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders errors returned from handlers, including fiber's own
// routing errors, as JSON {error}.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	var generic pkgError.GenericError
	switch {
	case errors.As(err, &generic):
		status = generic.StatusCode()
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
	}

	if status >= fiber.StatusInternalServerError {
		logrus.WithError(err).Errorf("[REST] %s %s failed", ctx.Method(), ctx.Path())
	}

	return ctx.Status(status).JSON(utils.ErrorResponse{Error: err.Error()})
}
