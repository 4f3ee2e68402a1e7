package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)

// ProductImageRepo implementación de ProductImageRepository sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

// Create persiste la referencia de una imagen.
func (r *ProductImageRepo) Create(image *entity.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, image_url, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		image.ID, image.ProductID, image.ImageURL, image.IsPrimary, image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// ListByProduct lista las imágenes de un producto, principal primero.
func (r *ProductImageRepo) ListByProduct(productID string) ([]*entity.ProductImage, error) {
	query := `
		SELECT id, product_id, image_url, is_primary, created_at
		FROM product_images WHERE product_id = $1
		ORDER BY is_primary DESC, created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todas las referencias de imagen de un producto.
func (r *ProductImageRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_images WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}
