package otp

// SendOTPRequest represents the request payload for sending an OTP
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
}

// VerifyOTPRequest represents the request payload for verifying an OTP
type VerifyOTPRequest struct {
	Phone   string `json:"phone" validate:"required,min=10,max=20"`
	OTPCode string `json:"otp_code" validate:"required,len=6"`
}

// SendOTPResponse represents the response for the send operation. The OTP
// code itself is never part of the response body.
type SendOTPResponse struct {
	Message   string `json:"message"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Success   bool   `json:"success"`
}

// VerifyOTPResponse represents the response for the verify operation
type VerifyOTPResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}
