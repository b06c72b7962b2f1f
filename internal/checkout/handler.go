package checkout

import (
	"encoding/json"
	"errors"

	"checkout-relay/internal/config"
	"checkout-relay/internal/stripe"
	"checkout-relay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	cfg *config.Config
	log *zap.Logger
}

func NewHandler(svc *Service, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// CreateCheckout handles POST /create-checkout. On success it answers 303 so
// the browser switches to GET when following the redirect to the hosted page.
func (h *Handler) CreateCheckout(c *fiber.Ctx) error {
	if h.cfg.StripeSecretKey == "" {
		h.log.Error("checkout rejected: STRIPE_SECRET_KEY is not configured")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "payment processor is not configured"})
	}

	req, err := ParseRequest(c)
	if err == nil {
		var redirect string
		if redirect, err = h.svc.CreateSession(c.UserContext(), req); err == nil {
			return c.Redirect(redirect, fiber.StatusSeeOther)
		}
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Msg})
	}
	var apiErr *stripe.APIError
	if errors.As(err, &apiErr) {
		h.log.Error("processor rejected session request",
			zap.Int("http_status", apiErr.StatusCode),
			zap.String("message", apiErr.Message))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": apiErr.Message})
	}
	h.log.Error("failed to create checkout session", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"error": "failed to create checkout session"})
}

// Webhook handles POST /webhook. Once the payload is parsed, the response is
// always 200: a non-2xx answer would make the processor retry an event we
// already accepted.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	if len(h.cfg.TrustedWebhookCIDRs) > 0 && !utils.IsAllowedIP(c.IP(), h.cfg.TrustedWebhookCIDRs) {
		h.log.Warn("webhook from unlisted source", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	body := c.Body()
	if h.cfg.StripeWebhookSecret != "" {
		if err := stripe.VerifySignature(body, c.Get(stripe.SignatureHeader), h.cfg.StripeWebhookSecret); err != nil {
			h.log.Warn("webhook signature rejected", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).SendString("Invalid signature")
		}
	}

	var event stripe.Event
	if err := json.Unmarshal(body, &event); err != nil {
		h.log.Warn("webhook body is not valid JSON", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).SendString("Invalid payload")
	}

	h.svc.HandleEvent(c.UserContext(), event)
	return c.SendString("Webhook processed")
}
