package otp

import (
	"errors"

	"enrollment-gateway/logger"
	otpService "enrollment-gateway/services/otp"
	"enrollment-gateway/types"
	otpTypes "enrollment-gateway/types/otp"

	"github.com/gofiber/fiber/v2"
)

// Controller handles OTP-related HTTP requests
type Controller struct {
	OTPService *otpService.Service
}

// NewOTPController creates a new OTP controller
func NewOTPController(service *otpService.Service) *Controller {
	return &Controller{
		OTPService: service,
	}
}

// SendOTP issues an OTP for the provided phone number. The response never
// contains the code; delivery happens in the background and its outcome
// does not change the result.
func (oc *Controller) SendOTP(c *fiber.Ctx) error {
	var req otpTypes.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	_, expiresAt, err := oc.OTPService.Issue(req.Phone)
	if err != nil {
		if errors.Is(err, otpService.ErrInvalidRecipient) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid phone number",
				Data: otpTypes.SendOTPResponse{
					Message: "Invalid phone number",
					Success: false,
				},
			})
		}
		logger.Error("Failed to issue OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to send OTP",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent successfully",
		Data: otpTypes.SendOTPResponse{
			Message:   "OTP sent to your phone number",
			ExpiresAt: expiresAt.Format("2006-01-02 15:04:05"),
			Success:   true,
		},
	})
}

// VerifyOTP verifies the provided OTP against the outstanding record
func (oc *Controller) VerifyOTP(c *fiber.Ctx) error {
	var req otpTypes.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	result := oc.OTPService.Verify(req.Phone, req.OTPCode)
	if !result.Verified {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "OTP verification failed",
			Data: otpTypes.VerifyOTPResponse{
				Verified: false,
				Reason:   string(result.Reason),
			},
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP verified successfully",
		Data: otpTypes.VerifyOTPResponse{
			Verified: true,
		},
	})
}
