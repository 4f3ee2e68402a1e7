package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetStock lee el stock vivo del producto; found=false si el producto no existe.
	GetStock(productID string) (int, bool, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, int, error)
	Delete(id string) (*entity.Product, error)
}
