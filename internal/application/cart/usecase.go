package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase operaciones del carrito por cliente: agregar/acumular, fijar cantidad,
// eliminar y listar. Las mutaciones corren dentro de una transacción con bloqueo
// de fila (SELECT FOR UPDATE) sobre la línea del carrito, de modo que dos requests
// concurrentes sobre la misma (customer, product) no se pisen el incremento ni
// pasen juntas la validación de stock.
//
// La fila de stock del producto NO se bloquea: el carrito no es una reserva, y
// una venta concurrente puede dejar una línea por encima del stock vivo hasta la
// siguiente operación sobre esa línea.
type UseCase struct {
	txRunner    TxRunner
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso del carrito.
func NewUseCase(txRunner TxRunner, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, cartRepo: cartRepo, productRepo: productRepo}
}

// AddOrMerge agrega Quantity unidades del producto al carrito del cliente.
// Si ya existe la línea, acumula (merge aditivo); si no, la crea. La cantidad
// prospectiva (existente + delta) debe caber en el stock vivo del producto.
func (uc *UseCase) AddOrMerge(ctx context.Context, customerID string, in dto.AddToCartRequest) (*dto.CartItemResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var result *entity.CartItem
	err := uc.txRunner.Run(ctx, func(cartRepo repository.CartRepository, productRepo repository.ProductRepository) error {
		stock, found, err := productRepo.GetStock(in.ProductID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrProductNotFound
		}

		existing, hasLine, err := cartRepo.FindOneForUpdate(customerID, in.ProductID)
		if err != nil {
			return err
		}

		prospective := in.Quantity
		if hasLine {
			prospective += existing.Quantity
		}
		if prospective > stock {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		if hasLine {
			existing.Quantity = prospective
			existing.UpdatedAt = now
			result = existing
		} else {
			result = &entity.CartItem{
				ID:         uuid.New().String(),
				CustomerID: customerID,
				ProductID:  in.ProductID,
				Quantity:   in.Quantity,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		}
		return cartRepo.Upsert(result)
	})
	if err != nil {
		return nil, err
	}
	return toCartItemResponse(result), nil
}

// UpdateQuantity fija la cantidad absoluta de una línea existente (no acumula).
// Una cantidad <= 0 se rechaza con ErrInvalidQuantity; nunca se convierte en delete.
func (uc *UseCase) UpdateQuantity(ctx context.Context, customerID, productID string, newQuantity int) (*dto.CartItemResponse, error) {
	if newQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var result *entity.CartItem
	err := uc.txRunner.Run(ctx, func(cartRepo repository.CartRepository, productRepo repository.ProductRepository) error {
		stock, found, err := productRepo.GetStock(productID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrProductNotFound
		}

		item, hasLine, err := cartRepo.FindOneForUpdate(customerID, productID)
		if err != nil {
			return err
		}
		if !hasLine {
			return domain.ErrCartItemNotFound
		}
		if newQuantity > stock {
			return domain.ErrInsufficientStock
		}

		item.Quantity = newQuantity
		item.UpdatedAt = time.Now()
		result = item
		return cartRepo.Upsert(item)
	})
	if err != nil {
		return nil, err
	}
	return toCartItemResponse(result), nil
}

// Remove elimina la línea del carrito y devuelve el snapshot eliminado.
// Sobre una línea ausente reporta ErrCartItemNotFound; el caller decide si es 404 o no-op.
func (uc *UseCase) Remove(customerID, productID string) (*dto.CartItemResponse, error) {
	removed, found, err := uc.cartRepo.Delete(customerID, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrCartItemNotFound
	}
	return toCartItemResponse(removed), nil
}

// ListForCustomer devuelve el carrito del cliente con el resumen de cada producto.
// Carrito vacío => lista vacía, nunca error.
func (uc *UseCase) ListForCustomer(customerID string) (*dto.CartResponse, error) {
	lines, err := uc.cartRepo.ListForCustomer(customerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartLineResponse, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		items = append(items, dto.CartLineResponse{
			CartItemResponse: *toCartItemResponse(&l.Item),
			ProductName:      l.ProductName,
			ProductPrice:     l.ProductPrice,
			ProductStock:     l.ProductStock,
			ImageURL:         l.ImageURL,
		})
		total = total.Add(l.ProductPrice.Mul(decimal.NewFromInt(int64(l.Item.Quantity))))
	}
	return &dto.CartResponse{Items: items, Total: total}, nil
}

func toCartItemResponse(i *entity.CartItem) *dto.CartItemResponse {
	if i == nil {
		return nil
	}
	return &dto.CartItemResponse{
		ID:         i.ID,
		CustomerID: i.CustomerID,
		ProductID:  i.ProductID,
		Quantity:   i.Quantity,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
