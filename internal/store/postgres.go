// Package store keeps a best-effort audit trail of checkout sessions in
// Postgres. A nil *Store is valid and disables persistence entirely; write
// failures are logged and never surface to HTTP callers.
package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"checkout-relay/internal/models"

	"go.uber.org/zap"
)

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Connect(dsn string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.CheckoutSession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return &Store{db: db, log: log}, nil
}

// RecordSession saves a newly created session.
func (s *Store) RecordSession(rec *models.CheckoutSession) {
	if s == nil {
		return
	}
	if err := s.db.Create(rec).Error; err != nil {
		s.log.Error("failed to record checkout session",
			zap.Error(err),
			zap.String("session_id", rec.SessionID))
	}
}

// MarkSessionStatus records the outcome reported by a webhook event.
func (s *Store) MarkSessionStatus(sessionID, status, paymentIntent string) {
	if s == nil || sessionID == "" {
		return
	}
	updates := map[string]any{"status": status}
	if paymentIntent != "" {
		updates["payment_intent"] = paymentIntent
	}
	err := s.db.Model(&models.CheckoutSession{}).
		Where("session_id = ?", sessionID).
		Updates(updates).Error
	if err != nil {
		s.log.Error("failed to mark session status",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("status", status))
	}
}
