package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/promopartout/backend/internal/config"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/token"

	jwtware "github.com/gofiber/contrib/jwt"
)

// JWTProtected verifies the bearer token's signature and expiry and
// stores the parsed token in context locals. Principal decoding happens
// in RequireMerchant/RequireAdmin.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Code: dto.CodeMissingToken, Message: token.ErrMissingToken.Error(),
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeInvalidToken, Message: token.ErrInvalidToken.Error(),
			})
		},
	})
}
