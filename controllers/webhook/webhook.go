package webhook

import (
	"errors"

	"enrollment-gateway/logger"
	webhookService "enrollment-gateway/services/webhook"
	"enrollment-gateway/types"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader is the provider-supplied signature over the raw body
const SignatureHeader = "X-Razorpay-Signature"

// Controller authenticates and dispatches provider webhook callbacks
type Controller struct {
	Dispatcher *webhookService.Dispatcher
	secret     string
}

// NewWebhookController creates a new webhook controller. An empty secret
// makes every callback fail verification; the path fails closed rather
// than skipping the check.
func NewWebhookController(dispatcher *webhookService.Dispatcher, secret string) *Controller {
	if secret == "" {
		logger.Warning("Webhook secret is not configured; all callbacks will be rejected")
	}
	return &Controller{
		Dispatcher: dispatcher,
		secret:     secret,
	}
}

// HandleWebhook verifies the callback signature over the exact raw request
// bytes and, only then, parses and dispatches the event. Verification
// failures get a client-error status; once the signature passes, the
// provider always receives the acknowledgment, whatever the handler did.
func (wc *Controller) HandleWebhook(c *fiber.Ctx) error {
	// c.Body() is the raw payload; no body-parsing middleware runs before this
	body := c.Body()
	signature := c.Get(SignatureHeader)

	if !webhookService.VerifySignature(body, signature, wc.secret) {
		logger.Warning("Rejected webhook with invalid signature from " + c.IP())
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid signature",
			Data:    nil,
		})
	}

	if _, err := wc.Dispatcher.Dispatch(body); err != nil {
		if errors.Is(err, webhookService.ErrMalformedPayload) {
			logger.Error("Verified webhook body is not valid JSON", err)
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Malformed payload",
				Data:    nil,
			})
		}
		// Handler errors are contained inside the dispatcher; anything
		// surfacing here still must not suppress the acknowledgment
		logger.Error("Webhook dispatch failed", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}
