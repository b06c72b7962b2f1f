// Package server assembles the fiber application: routing, CORS, panic
// recovery and the static confirmation pages.
package server

import (
	"checkout-relay/internal/checkout"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func New(h *checkout.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "checkout-relay",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type, Stripe-Signature",
	}))

	// Storefront widgets probe endpoints with bare OPTIONS requests; answer
	// them with an empty 200 (preflights are short-circuited by cors above).
	app.Options("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Post("/create-checkout", h.CreateCheckout)
	app.Post("/webhook", h.Webhook)
	app.Get("/success", successPage)
	app.Get("/cancel", cancelPage)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	})

	return app
}
