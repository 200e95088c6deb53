package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string   `json:"username" validate:"notblank,min=3,max=100"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=USER ADMIN ROLE_USER ROLE_ADMIN user admin"`
}

// ResetPasswordRequest entrada para reemplazar la contraseña de un usuario.
type ResetPasswordRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ProfileResponse datos del usuario autenticado.
type ProfileResponse struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}
