// Package checkout implements the relay's two flows: opening a hosted
// payment session for an order, and reconciling the processor's webhook
// events back into the shop backend.
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"checkout-relay/internal/form"
	"checkout-relay/internal/models"
	"checkout-relay/internal/store"
	"checkout-relay/internal/stripe"
	"checkout-relay/internal/woo"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultCurrency = "usd"

// SessionCreator opens a hosted payment session with the processor.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, spec form.Dict) (*stripe.CheckoutSession, error)
}

// OrderUpdater pushes an order-status change into the shop backend. The
// boolean result deliberately carries no error: updates are best-effort.
type OrderUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID, status, transactionID string) bool
}

type Service struct {
	sessions       SessionCreator
	orders         OrderUpdater
	store          *store.Store
	publicBaseURL  string
	backendBaseURL string
	log            *zap.Logger
	tracer         trace.Tracer
}

func NewService(sessions SessionCreator, orders OrderUpdater, st *store.Store,
	publicBaseURL, backendBaseURL string, log *zap.Logger, tracer trace.Tracer) *Service {
	return &Service{
		sessions:       sessions,
		orders:         orders,
		store:          st,
		publicBaseURL:  publicBaseURL,
		backendBaseURL: backendBaseURL,
		log:            log,
		tracer:         tracer,
	}
}

// CreateSession validates the inbound request, opens a hosted payment session
// and returns the page URL the shopper must be redirected to.
func (s *Service) CreateSession(ctx context.Context, req Request) (string, error) {
	ctx, span := s.tracer.Start(ctx, "Checkout.CreateSession")
	defer span.End()

	if err := req.validate(); err != nil {
		return "", err
	}
	unitAmount, err := MinorUnits(req.Amount)
	if err != nil {
		return "", err
	}

	session, err := s.sessions.CreateCheckoutSession(ctx, s.buildSessionSpec(req, unitAmount))
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	s.log.Info("checkout session created",
		zap.String("order_id", req.OrderID),
		zap.String("session_id", session.ID))
	s.store.RecordSession(&models.CheckoutSession{
		OrderID:    req.OrderID,
		SessionID:  session.ID,
		Currency:   currencyOf(req),
		UnitAmount: unitAmount,
	})

	return session.URL, nil
}

// MinorUnits converts a decimal major-unit amount into the smallest currency
// unit, rounding half away from zero (19.99 becomes 1999, never 1998).
func MinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, &ValidationError{Msg: "amount must be a decimal number"}
	}
	if !d.IsPositive() {
		return 0, &ValidationError{Msg: "amount must be positive"}
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func currencyOf(req Request) string {
	if req.Currency == "" {
		return defaultCurrency
	}
	return strings.ToLower(req.Currency)
}

func (s *Service) buildSessionSpec(req Request, unitAmount int64) form.Dict {
	// {CHECKOUT_SESSION_ID} is substituted by the processor, not by us.
	successURL := fmt.Sprintf("%s/success?order_id=%s&session_id={CHECKOUT_SESSION_ID}",
		s.publicBaseURL, url.QueryEscape(req.OrderID))
	cancelURL := fmt.Sprintf("%s/cancel?order_id=%s", s.publicBaseURL, url.QueryEscape(req.OrderID))

	spec := form.Dict{
		{Key: "payment_method_types", Value: []any{"card"}},
		{Key: "mode", Value: "payment"},
		{Key: "success_url", Value: successURL},
		{Key: "cancel_url", Value: cancelURL},
		{Key: "line_items", Value: []any{
			form.Dict{
				{Key: "price_data", Value: form.Dict{
					{Key: "currency", Value: currencyOf(req)},
					{Key: "product_data", Value: form.Dict{
						{Key: "name", Value: "Order " + req.OrderID},
					}},
					{Key: "unit_amount", Value: unitAmount},
				}},
				{Key: "quantity", Value: 1},
			},
		}},
		{Key: "metadata", Value: form.Dict{
			{Key: "order_id", Value: req.OrderID},
			{Key: "backend_url", Value: s.backendBaseURL},
		}},
	}
	if req.CustomerEmail != "" {
		spec = append(spec, form.Field{Key: "customer_email", Value: req.CustomerEmail})
	}
	return spec
}

// HandleEvent applies a processor notification to the order it references.
// Backend update failures are logged, never propagated: the webhook sender
// must receive an acknowledgement either way, or it retries forever.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) {
	ctx, span := s.tracer.Start(ctx, "Checkout.HandleEvent")
	defer span.End()

	obj := event.Data.Object
	orderID := obj.Metadata["order_id"]

	switch event.Type {
	case stripe.EventCheckoutCompleted:
		if orderID == "" {
			s.log.Warn("completed session carries no order_id", zap.String("event_id", event.ID))
			return
		}
		if !s.orders.UpdateOrderStatus(ctx, orderID, woo.StatusProcessing, obj.PaymentIntent) {
			s.log.Error("order not marked processing after completed session",
				zap.String("order_id", orderID),
				zap.String("session_id", obj.ID))
		}
		s.store.MarkSessionStatus(obj.ID, "completed", obj.PaymentIntent)

	case stripe.EventCheckoutExpired, stripe.EventCheckoutPaymentFailed:
		if orderID == "" {
			s.log.Warn("failed session carries no order_id", zap.String("event_id", event.ID))
			return
		}
		if !s.orders.UpdateOrderStatus(ctx, orderID, woo.StatusFailed, "") {
			s.log.Error("order not marked failed after unsuccessful session",
				zap.String("order_id", orderID),
				zap.String("session_id", obj.ID))
		}
		s.store.MarkSessionStatus(obj.ID, "failed", "")

	default:
		s.log.Info("ignoring webhook event", zap.String("type", event.Type))
	}
}
