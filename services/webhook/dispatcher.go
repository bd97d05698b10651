package webhook

import (
	"encoding/json"
	"errors"
	"fmt"

	"enrollment-gateway/logger"
	webhookTypes "enrollment-gateway/types/webhook"
)

// ErrMalformedPayload is returned when a verified body is not valid JSON.
// Possible when the provider signs invalid bytes; rejected, never a crash.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// PaymentHandler reacts to a verified payment.captured event
type PaymentHandler interface {
	HandlePaymentCaptured(p webhookTypes.CapturedPayment) error
}

// DispatchResult reports what the dispatcher did with a verified event
type DispatchResult struct {
	Kind    string
	Handled bool
}

// Dispatcher routes verified webhook payloads to their handlers. It must
// only ever see bytes that already passed signature verification.
type Dispatcher struct {
	handler PaymentHandler
}

func NewDispatcher(handler PaymentHandler) *Dispatcher {
	return &Dispatcher{handler: handler}
}

// Dispatch parses the verified body and routes known event kinds. Unknown
// kinds are a no-op so new provider events never cause rejections. Handler
// errors are logged and contained: the provider still gets its
// acknowledgment, since losing the retry signal is worse than losing one
// reconciliation opportunity.
func (d *Dispatcher) Dispatch(body []byte) (DispatchResult, error) {
	var event webhookTypes.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return DispatchResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	result := DispatchResult{Kind: event.Event}

	if event.Event != webhookTypes.EventPaymentCaptured {
		return result, nil
	}

	entity := event.Payload.Payment.Entity
	captured := webhookTypes.CapturedPayment{
		PaymentID: entity.ID,
		Amount:    entity.Amount,
		Email:     entity.Email,
		Contact:   entity.Contact,
	}

	logger.Success(fmt.Sprintf("Payment captured: %s amount %.2f", captured.PaymentID, captured.DisplayAmount()))

	if err := d.handler.HandlePaymentCaptured(captured); err != nil {
		logger.Error(fmt.Sprintf("Payment handler failed for %s", captured.PaymentID), err)
		return result, nil
	}

	result.Handled = true
	return result, nil
}
