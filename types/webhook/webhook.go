package webhook

// EventPaymentCaptured is the provider's discriminator for a confirmed payment.
const EventPaymentCaptured = "payment.captured"

// paiseDivisor converts the provider's smallest-unit amount to the display
// currency amount. Fixed by the provider's wire format, not configurable.
const paiseDivisor = 100

// Event is the envelope of an authenticated provider callback. It must only
// ever be decoded from bytes that already passed signature verification.
type Event struct {
	Event   string       `json:"event"`
	Payload EventPayload `json:"payload"`
}

type EventPayload struct {
	Payment PaymentWrapper `json:"payment"`
}

type PaymentWrapper struct {
	Entity PaymentEntity `json:"entity"`
}

// PaymentEntity is the provider's payment object. Amount is in paise.
type PaymentEntity struct {
	ID      string `json:"id"`
	Amount  int64  `json:"amount"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// CapturedPayment is the extracted, handler-facing view of a
// payment.captured event.
type CapturedPayment struct {
	PaymentID string
	Amount    int64
	Email     string
	Contact   string
}

// DisplayAmount returns the amount in the display currency unit.
func (p CapturedPayment) DisplayAmount() float64 {
	return float64(p.Amount) / paiseDivisor
}
