package delivery

import (
	"time"
)

// Attempt records one outbound OTP delivery attempt. Failed attempts are the
// observable failure queue for codes that never reached the user: the issue
// endpoint responds success before delivery runs, so this table is the only
// place a silent delivery failure shows up.
type Attempt struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone string `gorm:"type:varchar(20);not null;index" json:"phone"`

	// Last two digits only; the full code must never be persisted
	CodeHint string `gorm:"type:varchar(8)" json:"code_hint"`

	Status    AttemptStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Error     string        `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// AttemptStatus is the delivery outcome
type AttemptStatus string

const (
	AttemptStatusSent   AttemptStatus = "sent"
	AttemptStatusFailed AttemptStatus = "failed"
)
