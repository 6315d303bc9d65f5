package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountMovement es un asiento de dinero sobre una cuenta receptora
// (Ingreso o Egreso). Las ventas no escriben movimientos: los pagos por
// transferencia entran al balance por agregación separada.
type AccountMovement struct {
	ID          string
	Type        string // MovementTypeIngreso | MovementTypeEgreso
	Receiver    string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	SaleID      *string // referencia opcional a una venta
	CreatedAt   time.Time
}
