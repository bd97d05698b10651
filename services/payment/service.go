package payment

import (
	"errors"
	"fmt"

	"enrollment-gateway/logger"
	clientModel "enrollment-gateway/models/client"
	paymentModel "enrollment-gateway/models/payment"
	webhookTypes "enrollment-gateway/types/webhook"
	"enrollment-gateway/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entitlement activates the purchased program for a client. The collaborator
// is expected to be idempotent for a given payment id.
type Entitlement interface {
	Activate(clientUuid, program, paymentID string) error
}

// Service handles verified payment.captured events. Idempotency is enforced
// by the unique index on payments.payment_id: the first event for a payment
// id inserts the ledger row and performs activation, every replay inserts
// nothing and returns without side effects.
type Service struct {
	DB          *gorm.DB
	Entitlement Entitlement
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, entitlement Entitlement) *Service {
	return &Service{
		DB:          db,
		Entitlement: entitlement,
	}
}

// HandlePaymentCaptured records the captured payment, marks the matching
// client record as paid and triggers entitlement activation.
func (s *Service) HandlePaymentCaptured(p webhookTypes.CapturedPayment) error {
	if p.PaymentID == "" {
		return errors.New("captured payment has no payment id")
	}

	contact := ""
	if p.Contact != "" {
		contact = utils.NormalizePhone(p.Contact)
	}

	ledgerRow := paymentModel.Payment{
		PaymentID:     p.PaymentID,
		Amount:        p.Amount,
		DisplayAmount: p.DisplayAmount(),
		Email:         p.Email,
		Contact:       contact,
		Status:        paymentModel.StatusCaptured,
	}

	result := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_id"}},
		DoNothing: true,
	}).Create(&ledgerRow)
	if result.Error != nil {
		return fmt.Errorf("failed to record captured payment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Provider retry for an already-recorded payment; safe no-op
		logger.Info(fmt.Sprintf("Duplicate payment.captured for %s, skipping", p.PaymentID))
		return nil
	}

	client, err := s.findClient(contact, p.Email)
	if err != nil {
		return fmt.Errorf("failed to correlate client for payment %s: %w", p.PaymentID, err)
	}
	if client == nil {
		logger.Warning(fmt.Sprintf("No client matched payment %s (contact=%s email=%s)", p.PaymentID, contact, p.Email))
		return nil
	}

	updates := map[string]interface{}{
		"is_paid":    true,
		"payment_id": p.PaymentID,
	}
	if err := s.DB.Model(&clientModel.Client{}).Where("id = ?", client.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark client %d paid: %w", client.ID, err)
	}

	if err := s.Entitlement.Activate(client.Uuid, client.Program, p.PaymentID); err != nil {
		return fmt.Errorf("failed to activate entitlement for client %d: %w", client.ID, err)
	}

	if err := s.DB.Model(&paymentModel.Payment{}).
		Where("payment_id = ?", p.PaymentID).
		Update("status", paymentModel.StatusActivated).Error; err != nil {
		return fmt.Errorf("failed to update payment status for %s: %w", p.PaymentID, err)
	}

	logger.Success(fmt.Sprintf("Activated %s for client %d (payment %s)", client.Program, client.ID, p.PaymentID))
	return nil
}

// findClient correlates the payment contact details to an unpaid client
// record, preferring the normalized phone over the email.
func (s *Service) findClient(contact, email string) (*clientModel.Client, error) {
	var client clientModel.Client

	query := s.DB.Where("is_paid = false").Order("created_at DESC")
	switch {
	case contact != "" && email != "":
		query = query.Where("phone = ? OR email = ?", contact, email)
	case contact != "":
		query = query.Where("phone = ?", contact)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return nil, nil
	}

	if err := query.First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &client, nil
}
