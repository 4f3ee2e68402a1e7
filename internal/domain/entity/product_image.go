package entity

import "time"

// ProductImage referencia una imagen de producto persistida en disco.
// ImageURL es la ruta pública (/images/products/<archivo>), no la ruta física.
type ProductImage struct {
	ID        string
	ProductID string
	ImageURL  string
	IsPrimary bool
	CreatedAt time.Time
}
