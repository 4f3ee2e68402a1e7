package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es la cantidad vendible actual; el carrito la lee en vivo y nunca la cachea.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int             // unidades disponibles, >= 0
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
