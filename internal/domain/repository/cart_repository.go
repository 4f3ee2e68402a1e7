package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para las líneas del carrito.
// La presencia es explícita: found=false significa "no hay línea", nunca nil implícito,
// para que la decisión merge-vs-create del caso de uso sea total.
type CartRepository interface {
	// FindOne busca la línea de un cliente para un producto.
	FindOne(customerID, productID string) (*entity.CartItem, bool, error)
	// FindOneForUpdate igual que FindOne pero bloquea la fila (SELECT FOR UPDATE).
	// Usar dentro de una transacción para serializar leer-validar-escribir por línea.
	FindOneForUpdate(customerID, productID string) (*entity.CartItem, bool, error)
	// ListForCustomer lista las líneas del cliente unidas con el resumen del producto.
	// Carrito vacío => slice vacío, no error.
	ListForCustomer(customerID string) ([]entity.CartLine, error)
	// Upsert inserta o actualiza la línea preservando la unicidad (customer_id, product_id).
	Upsert(item *entity.CartItem) error
	// Delete elimina la línea y devuelve el snapshot eliminado; found=false si no existía.
	Delete(customerID, productID string) (*entity.CartItem, bool, error)
}
