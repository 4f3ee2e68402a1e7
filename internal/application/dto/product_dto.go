package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (multipart: las imágenes van aparte).
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" form:"category_id" validate:"required,uuid4"`
	Name        string          `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Stock       int             `json:"stock" form:"stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" form:"category_id" validate:"omitempty,uuid4"`
	Name        *string          `json:"name" form:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Stock       *int             `json:"stock" form:"stock" validate:"omitempty,min=0"`
}

// ProductImageResponse salida de una imagen de producto.
type ProductImageResponse struct {
	ID        string `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string                 `json:"id"`
	CategoryID  string                 `json:"category_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	Stock       int                    `json:"stock"`
	IsActive    bool                   `json:"is_active"`
	Images      []ProductImageResponse `json:"images"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
