package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/promopartout/backend/internal/dto"
)

// internalError logs the underlying failure and returns an opaque 500.
// Detail never crosses the boundary; the DB log handler keeps the record.
func internalError(c *fiber.Ctx, err error) error {
	slog.Error("request failed",
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err.Error(),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: dto.CodeInternalError, Message: "Internal server error",
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
