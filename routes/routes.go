package routes

import (
	"os"
	"strconv"
	"time"

	"enrollment-gateway/constants"
	adminController "enrollment-gateway/controllers/admin"
	clientController "enrollment-gateway/controllers/client"
	otpController "enrollment-gateway/controllers/otp"
	webhookController "enrollment-gateway/controllers/webhook"
	interakt "enrollment-gateway/httpServices/interakt"
	lms "enrollment-gateway/httpServices/lms"
	"enrollment-gateway/logger"
	"enrollment-gateway/middleware"
	deliveryService "enrollment-gateway/services/delivery"
	otpService "enrollment-gateway/services/otp"
	paymentService "enrollment-gateway/services/payment"
	webhookService "enrollment-gateway/services/webhook"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultOTPTTLSeconds = 120

// SetupRoutes wires collaborators, services and controllers onto the app
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	deliveryRecorder := deliveryService.NewRecorder(db)
	go deliveryRecorder.Process()

	interaktClient := interakt.NewClient(os.Getenv("INTERAKT_BASE_URL"), os.Getenv("INTERAKT_API_KEY"))
	lmsClient := lms.NewClient(os.Getenv("LMS_BASE_URL"))

	otpSvc := otpService.NewOTPService(otpTTL(), interaktClient, deliveryRecorder)

	// Lazy expiry at verify time is already correct; this sweep only bounds
	// memory growth from abandoned verifications
	go func() {
		for range time.Tick(10 * time.Minute) {
			otpSvc.CleanupExpired()
		}
	}()

	paymentSvc := paymentService.NewPaymentService(db, lmsClient)
	dispatcher := webhookService.NewDispatcher(paymentSvc)

	otpCtrl := otpController.NewOTPController(otpSvc)
	clientCtrl := clientController.NewClientController(db, asyncLogger)
	webhookCtrl := webhookController.NewWebhookController(dispatcher, os.Getenv("RAZORPAY_WEBHOOK_SECRET"))
	adminCtrl := adminController.NewAdminController(db)

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "enrollment-gateway",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")

	otpGroup := api.Group("/otp")
	otpGroup.Post("/send", otpCtrl.SendOTP)
	otpGroup.Post("/verify", otpCtrl.VerifyOTP)

	api.Post("/client/save", clientCtrl.Save)

	// Raw-body provider callback; must stay outside any body-parsing middleware
	app.Post("/razorpay-webhook", webhookCtrl.HandleWebhook)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermFinanceRead,
	))
	adminGroup.Get("/payments", adminCtrl.ListPayments)
	adminGroup.Get("/delivery-failures", adminCtrl.ListDeliveryFailures)
}

// otpTTL reads the configured OTP lifetime, defaulting to 2 minutes
func otpTTL() time.Duration {
	raw := os.Getenv("OTP_TTL_SECONDS")
	if raw == "" {
		return defaultOTPTTLSeconds * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		logger.Warning("Invalid OTP_TTL_SECONDS value, using default")
		return defaultOTPTTLSeconds * time.Second
	}
	return time.Duration(seconds) * time.Second
}
