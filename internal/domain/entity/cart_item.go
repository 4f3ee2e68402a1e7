package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem es una línea del carrito: a lo sumo una por (CustomerID, ProductID).
// Quantity es siempre >= 1; una línea que llegaría a 0 se elimina, nunca se guarda en 0.
type CartItem struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartLine es la proyección de una línea del carrito unida con el resumen del
// producto para mostrar el carrito (join explícito a nivel de repositorio).
type CartLine struct {
	Item         CartItem
	ProductName  string
	ProductPrice decimal.Decimal
	ProductStock int
	ImageURL     string // imagen principal, vacío si no tiene
}
