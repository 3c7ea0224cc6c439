package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/token"
)

const principalKey = "principal"

// RequireMerchant decodes the verified claims into a Principal and
// admits only merchant tokens.
func RequireMerchant() fiber.Handler {
	return requireKind(token.KindMerchant)
}

// RequireAdmin decodes the verified claims into a Principal and admits
// only admin tokens.
func RequireAdmin() fiber.Handler {
	return requireKind(token.KindAdmin)
}

func requireKind(want token.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parsed, ok := c.Locals("user").(*jwt.Token)
		if !ok || parsed == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeMissingToken, Message: token.ErrMissingToken.Error(),
			})
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeInvalidToken, Message: token.ErrInvalidToken.Error(),
			})
		}

		p, err := token.FromClaims(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeInvalidToken, Message: token.ErrInvalidToken.Error(),
			})
		}

		// Exhaustive over both principal kinds so no role check can be
		// forgotten: anything that is not the wanted kind is rejected.
		switch p.Kind {
		case want:
			c.Locals(principalKey, p)
			return c.Next()
		case token.KindMerchant, token.KindAdmin:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeInsufficientRole, Message: token.ErrInsufficientRole.Error(),
			})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeInvalidToken, Message: token.ErrInvalidToken.Error(),
			})
		}
	}
}

// GetPrincipal returns the Principal stored by RequireMerchant or
// RequireAdmin.
func GetPrincipal(c *fiber.Ctx) (token.Principal, bool) {
	p, ok := c.Locals(principalKey).(token.Principal)
	return p, ok
}
