package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GaloDurante/stockApp/internal/application/dto"
	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
	"github.com/GaloDurante/stockApp/pkg/textutil"
)

// ProductUseCase CRUD del catálogo de productos y reposición manual de stock.
// El stock nunca se edita directamente: solo reposición (suma) o el flujo de ventas.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create da de alta un producto del catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in.Name, in.Category, in.UnitsPerBox, in.PurchasePrice, in.SalePrice, in.SalePriceBox); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Stock:         in.Stock,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		SalePriceBox:  in.SalePriceBox,
		UnitsPerBox:   in.UnitsPerBox,
		Category:      in.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.UnitsPerBox == 0 {
		p.UnitsPerBox = 1
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto; nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Update edita los datos del catálogo. No toca Stock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in.Name, in.Category, in.UnitsPerBox, in.PurchasePrice, in.SalePrice, in.SalePriceBox); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Name
	p.Description = in.Description
	p.PurchasePrice = in.PurchasePrice
	p.SalePrice = in.SalePrice
	p.SalePriceBox = in.SalePriceBox
	p.UnitsPerBox = in.UnitsPerBox
	if p.UnitsPerBox == 0 {
		p.UnitsPerBox = 1
	}
	p.Category = in.Category
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto. Las líneas de venta que lo referencian quedan
// con la referencia en NULL y conservan el nombre snapshot.
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Restock suma unidades base al stock (reposición manual).
func (uc *ProductUseCase) Restock(id string, quantity int64) (*dto.ProductResponse, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.RestoreStock(id, quantity); err != nil {
		return nil, err
	}
	p.Stock += quantity
	return toProductResponse(p), nil
}

// List devuelve una página del catálogo con filtro por categoría y búsqueda
// por nombre insensible a acentos.
func (uc *ProductUseCase) List(category, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	if category != "" && !entity.ValidCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	products, total, err := uc.repo.List(repository.ProductFilter{
		Category: category,
		Search:   textutil.Fold(search),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

func validateProduct(name, category string, unitsPerBox int64, purchase, sale decimal.Decimal, saleBox *decimal.Decimal) error {
	if name == "" || !entity.ValidCategory(category) {
		return domain.ErrInvalidInput
	}
	if unitsPerBox < 0 {
		return domain.ErrInvalidInput
	}
	if purchase.LessThan(decimal.Zero) || sale.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if saleBox != nil && saleBox.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Stock:         p.Stock,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		SalePriceBox:  p.SalePriceBox,
		UnitsPerBox:   p.UnitsPerBox,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
