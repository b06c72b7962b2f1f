package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"checkout-relay/internal/checkout"
	"checkout-relay/internal/config"
	"checkout-relay/internal/server"
	"checkout-relay/internal/store"
	"checkout-relay/internal/stripe"
	"checkout-relay/internal/telemetry"
	"checkout-relay/internal/woo"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, tracer, shutdown, err := telemetry.Setup(ctx, "checkout-relay")
	if err != nil {
		stdlog.Fatalf("Could not initialize telemetry: %v", err)
	}
	defer shutdown(context.Background())

	if cfg.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is not set, checkout requests will be rejected")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Warn("STRIPE_WEBHOOK_SECRET is not set, webhook signatures will NOT be verified")
	}

	var st *store.Store
	if cfg.DatabaseDSN != "" {
		st, err = store.Connect(cfg.DatabaseDSN, log)
		if err != nil {
			log.Fatal("could not connect to database", zap.Error(err))
		}
	}

	stripeClient := stripe.NewClient(cfg.StripeSecretKey)
	wooClient := woo.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, log)

	svc := checkout.NewService(stripeClient, wooClient, st, cfg.PublicBaseURL, cfg.WooBaseURL, log, tracer)
	app := server.New(checkout.NewHandler(svc, cfg, log))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down checkout-relay...")
		_ = app.Shutdown()
		cancel()
	}()

	log.Info("checkout-relay listening", zap.String("addr", ":"+cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server error", zap.Error(err))
	}
}
