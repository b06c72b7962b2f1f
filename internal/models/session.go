package models

import (
	"time"
)

// CheckoutSession is an audit record of one hosted payment attempt. It is
// never read on the request path; it exists so operators can reconcile orders
// against processor events after the fact.
type CheckoutSession struct {
	ID            uint   `gorm:"primaryKey"`
	OrderID       string `gorm:"size:255;index"`
	SessionID     string `gorm:"size:255;uniqueIndex"`
	PaymentIntent string `gorm:"size:255"`
	Currency      string `gorm:"size:8"`
	UnitAmount    int64
	Status        string `gorm:"size:50;default:'open'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
