package delivery

import (
	"log"
	"time"

	deliveryModel "enrollment-gateway/models/delivery"

	"gorm.io/gorm"
)

// Recorder persists the outcome of outbound OTP delivery attempts through a
// buffered channel, the same way the async request logger works. Failed
// attempts form the queue the admin delivery-failures listing reads.
type Recorder struct {
	db      *gorm.DB
	channel chan deliveryModel.Attempt
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{
		db:      db,
		channel: make(chan deliveryModel.Attempt, 100),
	}
}

// Process drains the channel and persists attempts. Run as a goroutine.
func (r *Recorder) Process() {
	for attempt := range r.channel {
		if err := r.db.Create(&attempt).Error; err != nil {
			log.Printf("Failed to insert delivery attempt: %v", err)
		}
	}
}

// Record queues one delivery outcome. Never blocks the delivery goroutine:
// if the buffer is full the attempt is dropped rather than stalling sends.
func (r *Recorder) Record(phone, code string, sendErr error) {
	attempt := deliveryModel.Attempt{
		Phone:     phone,
		CodeHint:  codeHint(code),
		Status:    deliveryModel.AttemptStatusSent,
		CreatedAt: time.Now(),
	}
	if sendErr != nil {
		attempt.Status = deliveryModel.AttemptStatusFailed
		attempt.Error = sendErr.Error()
	}

	select {
	case r.channel <- attempt:
	default:
		log.Printf("Delivery attempt buffer full, dropping record for %s", phone)
	}
}

// codeHint keeps only the last two digits so the full code is never persisted
func codeHint(code string) string {
	if len(code) < 2 {
		return "****"
	}
	return "****" + code[len(code)-2:]
}
