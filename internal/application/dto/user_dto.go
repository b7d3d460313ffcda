package dto

import "github.com/shopspring/decimal"

// CreateUserRequest entrada para dar de alta a un usuario.
type CreateUserRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Role       string          `json:"role" validate:"required,oneof=ADMIN STAFF"`
	HourlyRate decimal.Decimal `json:"hourly_rate" validate:"gte=0"`
	Avatar     string          `json:"avatar"`
}

// UpdateUserRequest actualización parcial; los campos nil no se tocan.
type UpdateUserRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Role       *string          `json:"role" validate:"omitempty,oneof=ADMIN STAFF"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	Avatar     *string          `json:"avatar"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Avatar     string          `json:"avatar,omitempty"`
}

// UserListResponse lista de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}

// LoginRequest el personal entra eligiendo su usuario; el admin puede requerir contraseña.
type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
