package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo, incluidas las
// imágenes: los archivos van al ImageStore y las referencias a product_images.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageRepo    repository.ProductImageRepository
	store        ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	imageRepo repository.ProductImageRepository,
	store ImageStore,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, imageRepo: imageRepo, store: store}
}

// Create crea un producto y guarda sus imágenes; la primera imagen queda como principal.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest, images []ImageUpload) (*dto.ProductResponse, error) {
	exists, err := uc.categoryRepo.Exists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if err := uc.saveImages(product.ID, images); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto con sus imágenes. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product)
}

// Update actualiza un producto. Si llegan imágenes nuevas, reemplazan a las
// anteriores: se borran los archivos y las filas viejas antes de guardar.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest, images []ImageUpload) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		exists, err := uc.categoryRepo.Exists(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrCategoryNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := uc.removeImages(product.ID); err != nil {
			return nil, err
		}
		if err := uc.saveImages(product.ID, images); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(product)
}

// List lista productos con paginación; cada producto incluye sus imágenes.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina el producto, sus archivos de imagen y devuelve el snapshot. nil si no existía.
func (uc *ProductUseCase) Delete(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp, err := uc.toResponse(product)
	if err != nil {
		return nil, err
	}
	if err := uc.removeImages(id); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Delete(id); err != nil {
		return nil, err
	}
	return resp, nil
}

func (uc *ProductUseCase) saveImages(productID string, images []ImageUpload) error {
	isFirst := true
	for _, img := range images {
		url, err := uc.store.Save(img.Filename, img.Reader)
		if err != nil {
			return err
		}
		ref := &entity.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			ImageURL:  url,
			IsPrimary: isFirst,
			CreatedAt: time.Now(),
		}
		if err := uc.imageRepo.Create(ref); err != nil {
			return err
		}
		isFirst = false
	}
	return nil
}

func (uc *ProductUseCase) removeImages(productID string) error {
	old, err := uc.imageRepo.ListByProduct(productID)
	if err != nil {
		return err
	}
	for _, img := range old {
		// Un archivo ya ausente en disco no es fatal; la fila se elimina igual.
		_ = uc.store.Remove(img.ImageURL)
	}
	return uc.imageRepo.DeleteByProduct(productID)
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	images, err := uc.imageRepo.ListByProduct(p.ID)
	if err != nil {
		return nil, err
	}
	imgs := make([]dto.ProductImageResponse, 0, len(images))
	for _, img := range images {
		imgs = append(imgs, dto.ProductImageResponse{ID: img.ID, ImageURL: img.ImageURL, IsPrimary: img.IsPrimary})
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		Images:      imgs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
