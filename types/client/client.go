package client

// SaveClientRequest represents the request payload for saving a client record
type SaveClientRequest struct {
	Name        string  `json:"name" validate:"required"`
	Phone       string  `json:"phone" validate:"required,min=10,max=20"`
	Email       string  `json:"email" validate:"required,email"`
	Dob         string  `json:"dob" validate:"required"` // YYYY-MM-DD
	City        string  `json:"city"`
	Program     string  `json:"program" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"required"`
}

// SaveClientResponse carries the generated identifiers back to the caller
type SaveClientResponse struct {
	ID   uint   `json:"id"`
	Uuid string `json:"uuid"`
}
