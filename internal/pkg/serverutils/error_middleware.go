package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses. External
// service failures deliberately hide the cause behind the fixed
// unavailable message the chat UI shows.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Error()))
		}

		var cfgErr *apperr.UnsupportedConfigError
		if errors.As(err, &cfgErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(cfgErr.Error()))
		}

		var extErr *apperr.ExternalServiceError
		if errors.As(err, &extErr) {
			log.Error("HTTP", "external service failure", map[string]interface{}{
				"service": extErr.Service,
				"error":   extErr.Err.Error(),
				"path":    ctx.Path(),
			})
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(constant.ServiceUnavailableMessage))
		}

		var malformedErr *apperr.MalformedOutputError
		if errors.As(err, &malformedErr) {
			log.Error("HTTP", "malformed model output", map[string]interface{}{
				"error": malformedErr.Error(),
				"path":  ctx.Path(),
			})
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(constant.ServiceUnavailableMessage))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Error("HTTP", "unhandled error", map[string]interface{}{
			"error": err.Error(),
			"path":  ctx.Path(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
