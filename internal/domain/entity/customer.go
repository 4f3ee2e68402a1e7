package entity

import "time"

// Roles de cliente.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer representa un cliente de la tienda (también cubre administradores vía Role).
type Customer struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // customer, admin
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
