package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación de CartRepository sobre PostgreSQL (usable con pool o tx).
// La unicidad (customer_id, product_id) la garantiza un índice único más el
// upsert ON CONFLICT; un duplicado real es un error de programación, no un caso de negocio.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartItemColumns = `id, customer_id, product_id, quantity, created_at, updated_at`

// FindOne busca la línea de un cliente para un producto. found=false si no hay línea.
func (r *CartRepo) FindOne(customerID, productID string) (*entity.CartItem, bool, error) {
	query := `
		SELECT ` + cartItemColumns + `
		FROM cart_items WHERE customer_id = $1 AND product_id = $2`
	return r.scanOne(query, customerID, productID)
}

// FindOneForUpdate igual que FindOne pero con SELECT FOR UPDATE: bloquea la fila
// para serializar leer-validar-escribir dentro de la transacción del caller.
func (r *CartRepo) FindOneForUpdate(customerID, productID string) (*entity.CartItem, bool, error) {
	query := `
		SELECT ` + cartItemColumns + `
		FROM cart_items WHERE customer_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.scanOne(query, customerID, productID)
}

func (r *CartRepo) scanOne(query, customerID, productID string) (*entity.CartItem, bool, error) {
	var i entity.CartItem
	err := r.q.QueryRow(context.Background(), query, customerID, productID).Scan(
		&i.ID, &i.CustomerID, &i.ProductID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cart item: %w", err)
	}
	return &i, true, nil
}

// ListForCustomer lista las líneas del cliente unidas con el resumen del producto
// (join explícito con products y la imagen principal). Carrito vacío => slice vacío.
func (r *CartRepo) ListForCustomer(customerID string) ([]entity.CartLine, error) {
	query := `
		SELECT ci.id, ci.customer_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name, p.price, p.stock,
		       COALESCE((SELECT pi.image_url FROM product_images pi
		                 WHERE pi.product_id = p.id AND pi.is_primary
		                 LIMIT 1), '')
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	lines := make([]entity.CartLine, 0)
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(
			&l.Item.ID, &l.Item.CustomerID, &l.Item.ProductID, &l.Item.Quantity,
			&l.Item.CreatedAt, &l.Item.UpdatedAt,
			&l.ProductName, &l.ProductPrice, &l.ProductStock, &l.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Upsert inserta o actualiza la línea. ON CONFLICT sobre (customer_id, product_id)
// preserva la unicidad aunque dos creates corran en paralelo.
func (r *CartRepo) Upsert(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, customer_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CustomerID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// Delete elimina la línea y devuelve el snapshot eliminado (RETURNING).
// found=false si no existía; borrar lo ausente no es un error.
func (r *CartRepo) Delete(customerID, productID string) (*entity.CartItem, bool, error) {
	query := `
		DELETE FROM cart_items WHERE customer_id = $1 AND product_id = $2
		RETURNING ` + cartItemColumns
	var i entity.CartItem
	err := r.q.QueryRow(context.Background(), query, customerID, productID).Scan(
		&i.ID, &i.CustomerID, &i.ProductID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("delete cart item: %w", err)
	}
	return &i, true, nil
}
