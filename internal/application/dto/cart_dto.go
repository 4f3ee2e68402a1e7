package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest entrada para agregar (o acumular) un producto en el carrito.
// Quantity es el delta a sumar, siempre > 0; la suma con la línea existente la hace el caso de uso.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartItemRequest entrada para fijar la cantidad absoluta de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// CartItemResponse salida de una línea del carrito.
type CartItemResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CartLineResponse línea del carrito unida con el resumen del producto (para mostrar el carrito).
type CartLineResponse struct {
	CartItemResponse
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductStock int             `json:"product_stock"`
	ImageURL     string          `json:"image_url,omitempty"`
}

// CartResponse carrito completo de un cliente.
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}
