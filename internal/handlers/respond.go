package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/matiasmngz/users-api/internal/apperr"
	"github.com/matiasmngz/users-api/internal/dto"
)

// respondError maps a service error to its status code. 5xx details are
// logged, never exposed.
func respondError(c *fiber.Ctx, err error) error {
	code := apperr.StatusCode(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s must be a positive integer", name)
	}
	return uint(id), nil
}
