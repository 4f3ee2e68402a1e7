package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductImageRepository define el puerto de persistencia para las imágenes de producto.
// Los archivos físicos los maneja el storage; aquí solo las referencias.
type ProductImageRepository interface {
	Create(image *entity.ProductImage) error
	ListByProduct(productID string) ([]*entity.ProductImage, error)
	DeleteByProduct(productID string) error
}
