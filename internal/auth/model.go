package auth

import "time"

type SignupRequest struct {
	Username             string   `json:"username" validate:"required,max=100"`
	Password             string   `json:"password" validate:"required,max=72"`
	BaccalaureateScore   *float64 `json:"baccalaureate_score" validate:"omitempty,gte=0"`
	BaccalaureateSection *string  `json:"baccalaureate_section" validate:"omitempty,oneof=science maths literature economics info"`
	CareerPathID         *int     `json:"career_path_id" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,max=72"`
}

// TokenResponse follows the OAuth2 password grant response shape.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
