package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/middleware"
	"github.com/promopartout/backend/internal/services"
)

// PromotionHandler serves the merchant-facing promotion endpoints.
type PromotionHandler struct {
	promotions *services.PromotionService
}

func NewPromotionHandler(promotions *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotions: promotions}
}

func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeInvalidToken, Message: "Unauthorized",
		})
	}

	var req dto.CreatePromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid request body",
		})
	}

	promo, err := h.promotions.Create(p.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPromotionFields) ||
			errors.Is(err, services.ErrInvalidLatitude) ||
			errors.Is(err, services.ErrInvalidLongitude) ||
			errors.Is(err, services.ErrMerchantNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeValidationError, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(promo)
}

func (h *PromotionHandler) ListOwn(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeInvalidToken, Message: "Unauthorized",
		})
	}

	promos, err := h.promotions.ListByOwner(p.ID)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(promos)
}

func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeInvalidToken, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid promotion id",
		})
	}

	if err := h.promotions.Delete(id, p.ID); err != nil {
		if errors.Is(err, services.ErrPromotionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeNotFound, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "promotion deleted"})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
