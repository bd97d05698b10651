package admin

import (
	"enrollment-gateway/logger"
	deliveryModel "enrollment-gateway/models/delivery"
	paymentModel "enrollment-gateway/models/payment"
	"enrollment-gateway/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const listLimit = 100

// Controller serves the reconciliation listings behind admin auth
type Controller struct {
	DB *gorm.DB
}

// NewAdminController creates a new admin controller
func NewAdminController(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// ListPayments returns the most recent captured payments. Rows still in
// "captured" status after a handler failure are the ones needing manual
// reconciliation.
func (ac *Controller) ListPayments(c *fiber.Ctx) error {
	var payments []paymentModel.Payment
	if err := ac.DB.Order("created_at DESC").Limit(listLimit).Find(&payments).Error; err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list payments",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments retrieved successfully",
		Data:    payments,
	})
}

// ListDeliveryFailures returns recent failed OTP delivery attempts
func (ac *Controller) ListDeliveryFailures(c *fiber.Ctx) error {
	var attempts []deliveryModel.Attempt
	err := ac.DB.Where("status = ?", deliveryModel.AttemptStatusFailed).
		Order("created_at DESC").
		Limit(listLimit).
		Find(&attempts).Error
	if err != nil {
		logger.Error("Failed to list delivery failures", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list delivery failures",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery failures retrieved successfully",
		Data:    attempts,
	})
}
