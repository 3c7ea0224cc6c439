package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/promopartout/backend/internal/config"
	"github.com/promopartout/backend/internal/handlers"
	"github.com/promopartout/backend/internal/metrics"
	"github.com/promopartout/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	httpMetrics *metrics.HTTPMetrics,
	authHandler *handlers.AuthHandler,
	promotionHandler *handlers.PromotionHandler,
	adminHandler *handlers.AdminHandler,
	mobileHandler *handlers.MobileHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	api.Use(httpMetrics.Middleware())

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Merchant auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(authLimiter())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), middleware.RequireMerchant(), authHandler.Me)

	// Merchant promotion management
	promotions := api.Group("/promotions", middleware.JWTProtected(cfg), middleware.RequireMerchant())
	promotions.Get("/", promotionHandler.ListOwn)
	promotions.Post("/", promotionHandler.Create)
	promotions.Delete("/:id", promotionHandler.Delete)

	// Admin login is public; everything else under /admin requires an
	// admin principal.
	api.Post("/admin/login", authLimiter(), authHandler.AdminLogin)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RequireAdmin())
	admin.Get("/me", authHandler.AdminMe)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/merchants", adminHandler.ListMerchants)
	admin.Delete("/merchants/:id", adminHandler.DeleteMerchant)
	admin.Get("/promotions", adminHandler.ListPromotions)
	admin.Delete("/promotions/:id", adminHandler.DeletePromotion)

	// Public mobile surface — no authentication
	mobile := api.Group("/mobile")
	mobile.Get("/promotions", mobileHandler.ListPromotions)
	mobile.Get("/promotions/nearby", mobileHandler.NearbyPromotions)
	mobile.Post("/register", mobileHandler.RegisterDevice)
	mobile.Post("/heartbeat", mobileHandler.Heartbeat)
}

func authLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
