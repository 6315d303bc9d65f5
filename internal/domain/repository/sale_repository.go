package repository

import (
	"time"

	"github.com/GaloDurante/stockApp/internal/domain/entity"
)

// SaleFilter filtros para el listado de ventas.
type SaleFilter struct {
	DateFrom      *time.Time // inclusivo
	DateTo        *time.Time // exclusivo: el caso de uso manda el inicio del día siguiente
	PaymentMethod string // vacío = todos; filtra por EXISTS sobre payments
	Status        string // vacío = todos
	SortAsc       bool   // orden por fecha; default descendente
	Limit         int
	Offset        int
}

// SaleRepository puerto de persistencia para ventas, sus líneas y sus pagos.
// Las líneas son inmutables después de la creación; los pagos se reemplazan
// completos en cada actualización.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	CreatePayment(payment *entity.Payment) error

	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	GetPaymentsBySaleID(saleID string) ([]*entity.Payment, error)

	// UpdateHeader actualiza nota, envío, total y estado de la cabecera.
	UpdateHeader(sale *entity.Sale) error
	DeletePaymentsBySaleID(saleID string) error

	// Delete elimina la venta; la DB cascadea líneas y pagos.
	// Devuelve false si la venta no existía.
	Delete(id string) (bool, error)

	List(filter SaleFilter) ([]*entity.Sale, int, error)
}
