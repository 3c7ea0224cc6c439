package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/middleware"
	"github.com/promopartout/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.RegisterMerchant(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeDuplicateEmail, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeValidationError, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.LoginMerchant(&req)
	if err != nil {
		return loginError(c, err)
	}

	return c.JSON(resp)
}

// Me returns the authenticated merchant's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeInvalidToken, Message: "Unauthorized",
		})
	}

	merchant, err := h.authService.GetMerchant(p.ID)
	if err != nil {
		if errors.Is(err, services.ErrMerchantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeNotFound, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"merchant": merchant})
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.LoginAdmin(&req)
	if err != nil {
		return loginError(c, err)
	}

	return c.JSON(resp)
}

// AdminMe returns the authenticated admin's profile.
func (h *AuthHandler) AdminMe(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeInvalidToken, Message: "Unauthorized",
		})
	}

	admin, err := h.authService.GetAdmin(p.ID)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeNotFound, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"admin": admin})
}

func loginError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrMissingFields) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: err.Error(),
		})
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeInvalidCredentials, Message: err.Error(),
		})
	}
	return internalError(c, err)
}
