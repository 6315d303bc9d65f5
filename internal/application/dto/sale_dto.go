package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta seleccionada en el carrito.
// Quantity viene en la unidad elegida: cajas si IsBox, unidades si no;
// el caso de uso la normaliza a unidades base.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // precio cobrado por unidad base
	IsBox     bool            `json:"is_box"`
}

// SalePaymentRequest pago de una venta.
type SalePaymentRequest struct {
	Method   string          `json:"method"`
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver,omitempty"` // obligatorio para Transferencia
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Date                  time.Time            `json:"date"`
	Note                  string               `json:"note,omitempty"`
	ShippingPrice         *decimal.Decimal     `json:"shipping_price,omitempty"`
	SupplierCoveredAmount *decimal.Decimal     `json:"supplier_covered_amount,omitempty"`
	Items                 []SaleItemRequest    `json:"items"`
	Payments              []SalePaymentRequest `json:"payments"`
}

// UpdateSaleRequest body para PUT /api/sales/:id.
// Las líneas son inmutables: solo se revisan nota, envío y pagos.
type UpdateSaleRequest struct {
	Note                  string               `json:"note,omitempty"`
	ShippingPrice         *decimal.Decimal     `json:"shipping_price,omitempty"`
	SupplierCoveredAmount *decimal.Decimal     `json:"supplier_covered_amount,omitempty"`
	Payments              []SalePaymentRequest `json:"payments"`
}

// SaleItemResponse línea en la respuesta. ProductID vacío = producto eliminado
// después de la venta (se muestra el nombre snapshot).
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name"`
	Quantity      int64           `json:"quantity"` // unidades base
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	IsBox         bool            `json:"is_box"`
	UnitsPerBox   int64           `json:"units_per_box"`
}

// SalePaymentResponse pago en la respuesta.
type SalePaymentResponse struct {
	ID       string          `json:"id"`
	Method   string          `json:"method"`
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver,omitempty"`
}

// SaleResponse venta completa para POST/GET /api/sales.
type SaleResponse struct {
	ID                    string                `json:"id"`
	Date                  time.Time             `json:"date"`
	Note                  string                `json:"note,omitempty"`
	TotalPrice            decimal.Decimal       `json:"total_price"`
	ShippingPrice         *decimal.Decimal      `json:"shipping_price,omitempty"`
	SupplierCoveredAmount *decimal.Decimal      `json:"supplier_covered_amount,omitempty"`
	Status                string                `json:"status"`
	Items                 []SaleItemResponse    `json:"items"`
	Payments              []SalePaymentResponse `json:"payments"`
}

// SaleSummary fila del listado de ventas.
type SaleSummary struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
}

// SaleListRequest query params para GET /api/sales.
type SaleListRequest struct {
	DateFrom      string `query:"date_from"` // YYYY-MM-DD
	DateTo        string `query:"date_to"`
	PaymentMethod string `query:"payment_method"`
	Status        string `query:"status"`
	Sort          string `query:"sort"` // asc | desc (default desc)
	PageRequest
}

// SaleListResponse página de ventas.
type SaleListResponse struct {
	Items []SaleSummary `json:"items"`
	Page  PageResponse  `json:"page"`
}
