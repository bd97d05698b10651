package client

import (
	"time"
)

// Client represents a confirmed enrollment record. Business validation of
// these fields is delegated to the caller; the service only normalizes the
// phone number before storing it.
type Client struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid string `gorm:"type:varchar(255);not null;unique" json:"uuid"`

	Name  string     `gorm:"type:varchar(255);not null" json:"name"`
	Phone string     `gorm:"type:varchar(20);not null;index" json:"phone"`
	Email string     `gorm:"type:varchar(255);not null" json:"email"`
	Dob   *time.Time `json:"dob,omitempty"`

	// Age at registration time, derived from Dob
	AgeYears  int `gorm:"type:int" json:"age_years"`
	AgeMonths int `gorm:"type:int" json:"age_months"`
	AgeDays   int `gorm:"type:int" json:"age_days"`

	City        string  `gorm:"type:varchar(255)" json:"city"`
	Program     string  `gorm:"type:varchar(255);not null" json:"program"`
	TotalAmount float64 `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	// Set by the payment.captured handler once the provider confirms payment
	IsPaid    bool    `gorm:"default:false" json:"is_paid"`
	PaymentID *string `gorm:"type:varchar(255);index" json:"payment_id,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
