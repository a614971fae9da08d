package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	pkgError "github.com/shiurnotes/shiurnotes/pkg/error"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Recovery turns panics raised by handlers into a JSON {error} body.
// GenericError values keep their own status; anything else is a 500.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			status, message := http.StatusInternalServerError, fmt.Sprintf("%v", recovered)
			if err, ok := recovered.(error); ok {
				var generic pkgError.GenericError
				if errors.As(err, &generic) {
					status, message = generic.StatusCode(), generic.Error()
				}
			}

			if status >= http.StatusInternalServerError {
				logrus.Errorf("[REST] %s %s failed: %v", ctx.Method(), ctx.Path(), recovered)
			} else {
				logrus.Debugf("[REST] %s %s rejected with %d: %s", ctx.Method(), ctx.Path(), status, message)
			}

			_ = ctx.Status(status).JSON(utils.ErrorResponse{Error: message})
		}()

		return ctx.Next()
	}
}
