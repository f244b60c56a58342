package api

// Request DTOs. Field names follow the auth provider's JSON contract.

type InitRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

type OtpRequest struct {
	Email   string `json:"email" validate:"required,email,max=100"`
	Otp     string `json:"otp" validate:"required,max=20"`
	Session string `json:"session" validate:"required"`
}

// Response DTOs

type InitResponse struct {
	Session string `json:"session"`
}

type StatusResponse struct {
	Email string `json:"email"`
}
