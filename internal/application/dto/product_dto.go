package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Stock         int64            `json:"stock"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	SalePriceBox  *decimal.Decimal `json:"sale_price_box,omitempty"`
	UnitsPerBox   int64            `json:"units_per_box"`
	Category      string           `json:"category"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// No permite tocar Stock: el stock se muta solo vía ventas o reposición.
type UpdateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	SalePriceBox  *decimal.Decimal `json:"sale_price_box,omitempty"`
	UnitsPerBox   int64            `json:"units_per_box"`
	Category      string           `json:"category"`
}

// RestockRequest body para POST /api/products/:id/restock.
type RestockRequest struct {
	Quantity int64 `json:"quantity"` // unidades base a sumar
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Stock         int64            `json:"stock"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	SalePriceBox  *decimal.Decimal `json:"sale_price_box,omitempty"`
	UnitsPerBox   int64            `json:"units_per_box"`
	Category      string           `json:"category"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
