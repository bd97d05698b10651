package payment

import (
	"time"
)

// Payment is the durable ledger of captured payments. The unique constraint
// on PaymentID is what makes webhook replay a safe no-op: the handler inserts
// with ON CONFLICT DO NOTHING and skips activation when no row was written.
type Payment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentID string `gorm:"type:varchar(255);not null;uniqueIndex" json:"payment_id"`

	// Amount in the smallest currency unit, exactly as the provider sent it
	Amount        int64   `gorm:"type:bigint;not null" json:"amount"`
	DisplayAmount float64 `gorm:"type:numeric(12,2);not null" json:"display_amount"`

	Email   string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Contact string `gorm:"type:varchar(20);index" json:"contact,omitempty"`

	Status    PaymentStatus `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// PaymentStatus tracks how far the handler got with a captured payment
type PaymentStatus string

const (
	// StatusCaptured means the ledger row exists but activation has not
	// completed (persistence or entitlement failure, pending reconciliation)
	StatusCaptured PaymentStatus = "captured"
	// StatusActivated means the client record was marked paid and the
	// entitlement unlock call succeeded
	StatusActivated PaymentStatus = "activated"
)
