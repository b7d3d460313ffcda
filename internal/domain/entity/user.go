package entity

import "github.com/shopspring/decimal"

// Role rol de un usuario. Conjunto cerrado.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Valid indica si el rol pertenece al conjunto conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

// User persona que puede iniciar sesión (administrador o personal).
type User struct {
	ID         string
	Name       string
	Role       Role
	HourlyRate decimal.Decimal // informativo, no interviene en el saldo
	Avatar     string          // opcional
}
