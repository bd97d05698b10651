package webhook

import (
	"errors"
	"testing"

	webhookTypes "enrollment-gateway/types/webhook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHandler records captured payments passed to it
type stubHandler struct {
	captured []webhookTypes.CapturedPayment
	err      error
}

func (h *stubHandler) HandlePaymentCaptured(p webhookTypes.CapturedPayment) error {
	h.captured = append(h.captured, p)
	return h.err
}

func TestDispatchPaymentCaptured(t *testing.T) {
	handler := &stubHandler{}
	d := NewDispatcher(handler)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","amount":250000,"email":"a@b.com","contact":"+919876543210"}}}}`)

	result, err := d.Dispatch(body)
	require.NoError(t, err)
	assert.True(t, result.Handled)
	assert.Equal(t, "payment.captured", result.Kind)

	require.Len(t, handler.captured, 1)
	p := handler.captured[0]
	assert.Equal(t, "pay_1", p.PaymentID)
	assert.Equal(t, int64(250000), p.Amount)
	assert.Equal(t, "a@b.com", p.Email)
	assert.Equal(t, "+919876543210", p.Contact)
	assert.InDelta(t, 2500.00, p.DisplayAmount(), 0.001)
}

func TestDispatchUnknownKindIsNoOp(t *testing.T) {
	handler := &stubHandler{}
	d := NewDispatcher(handler)

	result, err := d.Dispatch([]byte(`{"event":"payment.authorized","payload":{}}`))
	require.NoError(t, err, "unknown kinds must be accepted, not rejected")
	assert.False(t, result.Handled)
	assert.Equal(t, "payment.authorized", result.Kind)
	assert.Empty(t, handler.captured)
}

func TestDispatchMalformedPayload(t *testing.T) {
	handler := &stubHandler{}
	d := NewDispatcher(handler)

	_, err := d.Dispatch([]byte(`{"event":`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Empty(t, handler.captured)
}

func TestDispatchContainsHandlerErrors(t *testing.T) {
	handler := &stubHandler{err: errors.New("db down")}
	d := NewDispatcher(handler)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_2","amount":100}}}}`)

	result, err := d.Dispatch(body)
	require.NoError(t, err, "handler failures must not suppress the acknowledgment")
	assert.False(t, result.Handled)
	require.Len(t, handler.captured, 1)
}
