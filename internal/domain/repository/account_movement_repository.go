package repository

import (
	"time"

	"github.com/GaloDurante/stockApp/internal/domain/entity"
)

// MovementFilter filtros para el listado de movimientos de cuenta.
type MovementFilter struct {
	Receiver string // vacío = todos
	Type     string // vacío = todos
	DateFrom *time.Time // inclusivo
	DateTo   *time.Time // exclusivo: el caso de uso manda el inicio del día siguiente
	Limit    int
	Offset   int
}

// AccountMovementRepository puerto de persistencia del libro de cuentas.
type AccountMovementRepository interface {
	Create(movement *entity.AccountMovement) error
	GetByID(id string) (*entity.AccountMovement, error)
	Update(movement *entity.AccountMovement) error
	Delete(id string) (bool, error)
	List(filter MovementFilter) ([]*entity.AccountMovement, int, error)
}
