package model

// LoginRequest represents the admin login payload.
type LoginRequest struct {
	User string `json:"user" validate:"required"`
	Pass string `json:"pass" validate:"required"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
	User  string `json:"user"`
}
