package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrEmptyItems       = errors.New("la venta debe tener al menos un producto")
	ErrNoPayments       = errors.New("la venta debe tener al menos un pago")
	ErrReceiverRequired = errors.New("los pagos por transferencia requieren una cuenta receptora")
	ErrNegativeAmount   = errors.New("el monto debe ser mayor a cero")
)

// InsufficientStockError indica que la cantidad solicitada (en unidades base)
// supera el stock disponible del producto. Aborta la transacción completa.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q", e.ProductName)
}

// PaymentsExceedTotalError indica que la suma de pagos supera el total neto de la venta.
// Se reporta la suma intentada y el límite; nunca se recorta en silencio.
type PaymentsExceedTotalError struct {
	Sum   decimal.Decimal
	Limit decimal.Decimal
}

func (e *PaymentsExceedTotalError) Error() string {
	return fmt.Sprintf("la suma de pagos (%s) supera el total de la venta (%s)", e.Sum, e.Limit)
}
