package payment

import (
	"errors"
	"fmt"
	"testing"

	clientModel "enrollment-gateway/models/client"
	paymentModel "enrollment-gateway/models/payment"
	webhookTypes "enrollment-gateway/types/webhook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubEntitlement records activation calls
type stubEntitlement struct {
	calls []string
	err   error
}

func (e *stubEntitlement) Activate(clientUuid, program, paymentID string) error {
	e.calls = append(e.calls, clientUuid+":"+program+":"+paymentID)
	return e.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clientModel.Client{}, &paymentModel.Payment{}))
	return db
}

func seedClient(t *testing.T, db *gorm.DB, phone, email string) clientModel.Client {
	t.Helper()

	record := clientModel.Client{
		Uuid:        "client-" + phone,
		Name:        "Test Client",
		Phone:       phone,
		Email:       email,
		Program:     "foundation",
		TotalAmount: 2500,
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func capturedEvent(paymentID string) webhookTypes.CapturedPayment {
	return webhookTypes.CapturedPayment{
		PaymentID: paymentID,
		Amount:    250000,
		Email:     "a@b.com",
		Contact:   "+919876543210",
	}
}

func TestHandlePaymentCaptured(t *testing.T) {
	db := newTestDB(t)
	entitlement := &stubEntitlement{}
	svc := NewPaymentService(db, entitlement)

	client := seedClient(t, db, "9876543210", "a@b.com")

	require.NoError(t, svc.HandlePaymentCaptured(capturedEvent("pay_1")))

	var ledger paymentModel.Payment
	require.NoError(t, db.Where("payment_id = ?", "pay_1").First(&ledger).Error)
	assert.Equal(t, int64(250000), ledger.Amount)
	assert.InDelta(t, 2500.00, ledger.DisplayAmount, 0.001)
	assert.Equal(t, "9876543210", ledger.Contact, "contact is stored normalized")
	assert.Equal(t, paymentModel.StatusActivated, ledger.Status)

	var updated clientModel.Client
	require.NoError(t, db.First(&updated, client.ID).Error)
	assert.True(t, updated.IsPaid)
	require.NotNil(t, updated.PaymentID)
	assert.Equal(t, "pay_1", *updated.PaymentID)

	require.Len(t, entitlement.calls, 1)
	assert.Equal(t, client.Uuid+":foundation:pay_1", entitlement.calls[0])
}

func TestHandlePaymentCapturedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	entitlement := &stubEntitlement{}
	svc := NewPaymentService(db, entitlement)

	seedClient(t, db, "9876543210", "a@b.com")

	require.NoError(t, svc.HandlePaymentCaptured(capturedEvent("pay_1")))
	// Provider retry with the identical event
	require.NoError(t, svc.HandlePaymentCaptured(capturedEvent("pay_1")))

	var count int64
	require.NoError(t, db.Model(&paymentModel.Payment{}).Where("payment_id = ?", "pay_1").Count(&count).Error)
	assert.Equal(t, int64(1), count, "one ledger row per payment id")

	assert.Len(t, entitlement.calls, 1, "activation must not run twice")
}

func TestHandlePaymentCapturedNoMatchingClient(t *testing.T) {
	db := newTestDB(t)
	entitlement := &stubEntitlement{}
	svc := NewPaymentService(db, entitlement)

	require.NoError(t, svc.HandlePaymentCaptured(capturedEvent("pay_orphan")))

	// The ledger row still exists for reconciliation
	var ledger paymentModel.Payment
	require.NoError(t, db.Where("payment_id = ?", "pay_orphan").First(&ledger).Error)
	assert.Equal(t, paymentModel.StatusCaptured, ledger.Status)

	assert.Empty(t, entitlement.calls)
}

func TestHandlePaymentCapturedEntitlementFailure(t *testing.T) {
	db := newTestDB(t)
	entitlement := &stubEntitlement{err: errors.New("lms unreachable")}
	svc := NewPaymentService(db, entitlement)

	seedClient(t, db, "9876543210", "a@b.com")

	err := svc.HandlePaymentCaptured(capturedEvent("pay_1"))
	require.Error(t, err)

	// The ledger row stays in captured status so the admin listing shows it
	var ledger paymentModel.Payment
	require.NoError(t, db.Where("payment_id = ?", "pay_1").First(&ledger).Error)
	assert.Equal(t, paymentModel.StatusCaptured, ledger.Status)
}

func TestHandlePaymentCapturedRejectsEmptyID(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, &stubEntitlement{})

	err := svc.HandlePaymentCaptured(webhookTypes.CapturedPayment{Amount: 100})
	assert.Error(t, err)
}

func TestHandlePaymentCapturedMatchesByEmailOnly(t *testing.T) {
	db := newTestDB(t)
	entitlement := &stubEntitlement{}
	svc := NewPaymentService(db, entitlement)

	client := seedClient(t, db, "8000000000", "only@email.com")

	event := webhookTypes.CapturedPayment{
		PaymentID: "pay_email",
		Amount:    50000,
		Email:     "only@email.com",
	}
	require.NoError(t, svc.HandlePaymentCaptured(event))

	var updated clientModel.Client
	require.NoError(t, db.First(&updated, client.ID).Error)
	assert.True(t, updated.IsPaid)
	require.Len(t, entitlement.calls, 1)
}
