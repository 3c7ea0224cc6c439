package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/promopartout/backend/internal/dto"
	"github.com/promopartout/backend/internal/services"
)

// MobileHandler serves the public endpoints consumed by the mobile app:
// promotion browsing, proximity search, and anonymous device tracking.
type MobileHandler struct {
	promotions *services.PromotionService
	devices    *services.DeviceService
}

func NewMobileHandler(promotions *services.PromotionService, devices *services.DeviceService) *MobileHandler {
	return &MobileHandler{promotions: promotions, devices: devices}
}

func (h *MobileHandler) ListPromotions(c *fiber.Ctx) error {
	promos, err := h.promotions.ListAllMobile()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(promos)
}

func (h *MobileHandler) NearbyPromotions(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "latitude and longitude are required",
		})
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "latitude and longitude are required",
		})
	}

	radius := services.DefaultNearbyRadiusKm
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeValidationError, Message: "radius must be numeric",
			})
		}
	}

	promos, err := h.promotions.Nearby(lat, lng, radius)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLatitude) || errors.Is(err, services.ErrInvalidLongitude) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeValidationError, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(promos)
}

func (h *MobileHandler) RegisterDevice(c *fiber.Ctx) error {
	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid request body",
		})
	}

	resp, err := h.devices.RegisterOrTouch(&req)
	if err != nil {
		if errors.Is(err, services.ErrDeviceIDRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeValidationError, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(resp)
}

func (h *MobileHandler) Heartbeat(c *fiber.Ctx) error {
	var req dto.HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeValidationError, Message: "Invalid request body",
		})
	}

	if err := h.devices.Heartbeat(req.DeviceID); err != nil {
		if errors.Is(err, services.ErrDeviceIDRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeValidationError, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrDeviceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Code: dto.CodeNotFound, Message: err.Error(),
			})
		}
		return internalError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "heartbeat recorded"})
}
