package auth

import "time"

type TokenRequest struct {
	Email  string `json:"email" validate:"required,email"`
	APIKey string `json:"api_key" validate:"required,min=16,max=72"`
}

type TokenResponse struct {
	AccessToken      string  `json:"access_token"`
	ExpiresInMinutes float64 `json:"expires_in_minutes"`
}

type CreateOperatorRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
}

// OperatorResponse carries the plain API key only when the operator has just
// been created.
type OperatorResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	APIKey    string    `json:"api_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
