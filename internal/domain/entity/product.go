package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock y precios.
// Stock se expresa siempre en unidades base (nunca en cajas) y solo lo muta
// el flujo de ventas (descuento/restitución) o la reposición manual.
type Product struct {
	ID            string
	Name          string
	Description   string
	Stock         int64 // unidades base; invariante: nunca negativo
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal  // precio por unidad
	SalePriceBox  *decimal.Decimal // precio por caja (opcional)
	UnitsPerBox   int64            // >= 1
	Category      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
