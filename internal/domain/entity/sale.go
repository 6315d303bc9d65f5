package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta: cabecera más sus ítems y pagos.
// TotalPrice refleja la suma de líneas ajustada por el costo neto de envío
// (ShippingPrice - SupplierCoveredAmount).
type Sale struct {
	ID                    string
	Date                  time.Time
	Note                  string
	TotalPrice            decimal.Decimal
	ShippingPrice         *decimal.Decimal
	SupplierCoveredAmount *decimal.Decimal
	Status                string // SaleStatusPendiente | SaleStatusCompletada
	Items                 []*SaleItem
	Payments              []*Payment
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SaleItem es una línea de venta, inmutable después de la creación.
// Snapshotea nombre, precio de compra y unidades por caja al momento de vender;
// ProductID queda en nil si el producto se elimina después (huérfano aceptado).
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     *string
	ProductName   string
	Quantity      int64 // ya normalizada a unidades base
	UnitPrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	IsBox         bool
	UnitsPerBox   int64
}

// Payment es un pago asociado a una venta. Receiver es obligatorio cuando
// el método es Transferencia; para Efectivo se ignora.
type Payment struct {
	ID       string
	SaleID   string
	Method   string // PaymentMethodEfectivo | PaymentMethodTransferencia
	Amount   decimal.Decimal
	Receiver *string
}

// NormalizedQuantity convierte una cantidad a unidades base:
// cajas se multiplican por unidades por caja.
func NormalizedQuantity(quantity int64, isBox bool, unitsPerBox int64) int64 {
	if isBox {
		return quantity * unitsPerBox
	}
	return quantity
}

// ItemsTotal suma cantidad × precio unitario sobre todas las líneas.
func ItemsTotal(items []*SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// NetTotal aplica el costo neto de envío al total de líneas:
// itemsTotal + shipping - supplierCovered (cada uno opcional).
func NetTotal(itemsTotal decimal.Decimal, shipping, supplierCovered *decimal.Decimal) decimal.Decimal {
	total := itemsTotal
	if shipping != nil {
		total = total.Add(*shipping)
	}
	if supplierCovered != nil {
		total = total.Sub(*supplierCovered)
	}
	return total
}

// PaymentsSum suma los montos de todos los pagos.
func PaymentsSum(payments []*Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// DeriveStatus deriva el estado de la venta: Completada exactamente cuando la
// suma de pagos iguala el total neto (comparación decimal, sin redondeo).
func DeriveStatus(paymentsSum, netTotal decimal.Decimal) string {
	if paymentsSum.Equal(netTotal) {
		return SaleStatusCompletada
	}
	return SaleStatusPendiente
}
