package client

import (
	"time"

	"enrollment-gateway/logger"
	clientModel "enrollment-gateway/models/client"
	"enrollment-gateway/types"
	clientTypes "enrollment-gateway/types/client"
	"enrollment-gateway/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller handles client record persistence
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewClientController creates a new client controller
func NewClientController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Save persists a client record and returns the generated identifiers.
// The phone is normalized before storage; all other business validation is
// the caller's concern.
func (cc *Controller) Save(c *fiber.Ctx) error {
	var req clientTypes.SaveClientRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	record := clientModel.Client{
		Uuid:        uuid.NewString(),
		Name:        req.Name,
		Phone:       utils.NormalizePhone(req.Phone),
		Email:       req.Email,
		City:        req.City,
		Program:     req.Program,
		TotalAmount: req.TotalAmount,
	}

	if req.Dob != "" {
		dob, err := time.Parse("2006-01-02", req.Dob)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid date of birth, expected YYYY-MM-DD",
				Data:    nil,
			})
		}
		record.Dob = &dob
		record.AgeYears, record.AgeMonths, record.AgeDays = utils.CalculateAge(dob)
	}

	if err := cc.DB.Create(&record).Error; err != nil {
		logger.Error("Failed to save client record", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save client",
			Data:    nil,
		})
	}

	err := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Client saved successfully",
		Data: clientTypes.SaveClientResponse{
			ID:   record.ID,
			Uuid: record.Uuid,
		},
	})

	if cc.Logger != nil {
		cc.Logger.Log(utils.CreateLogEntry(c))
	}

	return err
}
