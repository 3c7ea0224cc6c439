package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/services"
)

// AdminHandler serves the admin management surface: dashboard stats,
// merchant management, and unrestricted promotion deletes.
type AdminHandler struct {
	promotions *services.PromotionService
	stats      *services.StatsService
}

func NewAdminHandler(promotions *services.PromotionService, stats *services.StatsService) *AdminHandler {
	return &AdminHandler{promotions: promotions, stats: stats}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.stats.Dashboard()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) ListMerchants(c *fiber.Ctx) error {
	merchants, err := h.stats.ListMerchants()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(merchants)
}

func (h *AdminHandler) DeleteMerchant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid merchant id",
		})
	}

	if err := h.promotions.DeleteMerchantCascade(id); err != nil {
		if errors.Is(err, services.ErrMerchantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeNotFound, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "merchant and its promotions deleted"})
}

func (h *AdminHandler) ListPromotions(c *fiber.Ctx) error {
	promos, err := h.promotions.ListAllAdmin()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(promos)
}

func (h *AdminHandler) DeletePromotion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid promotion id",
		})
	}

	if err := h.promotions.DeleteAsAdmin(id); err != nil {
		if errors.Is(err, services.ErrPromotionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeNotFound, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "promotion deleted"})
}
