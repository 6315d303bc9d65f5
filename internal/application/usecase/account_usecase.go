package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GaloDurante/stockApp/internal/application/dto"
	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

// AccountUseCase CRUD del libro de movimientos de cuenta.
// Las ventas no pasan por acá: sus pagos entran al balance por agregación.
type AccountUseCase struct {
	repo repository.AccountMovementRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.AccountMovementRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

// Create registra un movimiento (Ingreso o Egreso) sobre una cuenta receptora.
func (uc *AccountUseCase) Create(in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if err := validateMovement(in.Type, in.Receiver, in.Amount); err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	var saleID *string
	if in.SaleID != "" {
		s := in.SaleID
		saleID = &s
	}
	m := &entity.AccountMovement{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Receiver:    in.Receiver,
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
		SaleID:      saleID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// Update edita un movimiento existente (solo admin).
func (uc *AccountUseCase) Update(id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	if err := validateMovement(in.Type, in.Receiver, in.Amount); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Type = in.Type
	m.Receiver = in.Receiver
	m.Amount = in.Amount
	if !in.Date.IsZero() {
		m.Date = in.Date
	}
	m.Description = in.Description
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// Delete elimina un movimiento.
func (uc *AccountUseCase) Delete(id string) error {
	ok, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve una página de movimientos según los filtros.
func (uc *AccountUseCase) List(in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	if in.Receiver != "" && !entity.ValidReceiver(in.Receiver) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != "" && !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.MovementFilter{
		Receiver: in.Receiver,
		Type:     in.Type,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	var err error
	if filter.DateFrom, err = parseFilterDate(in.DateFrom); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseFilterDateTo(in.DateTo); err != nil {
		return nil, err
	}

	movements, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(movements)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, m := range movements {
		out.Items = append(out.Items, *toMovementResponse(m))
	}
	return out, nil
}

func validateMovement(movType, receiver string, amount decimal.Decimal) error {
	if !entity.ValidMovementType(movType) || !entity.ValidReceiver(receiver) {
		return domain.ErrInvalidInput
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrNegativeAmount
	}
	return nil
}

func parseFilterDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// parseFilterDateTo inicio del día siguiente: cota superior exclusiva para
// que el día pedido entre completo.
func parseFilterDateTo(s string) (*time.Time, error) {
	t, err := parseFilterDate(s)
	if err != nil || t == nil {
		return t, err
	}
	next := t.AddDate(0, 0, 1)
	return &next, nil
}

func toMovementResponse(m *entity.AccountMovement) *dto.MovementResponse {
	saleID := ""
	if m.SaleID != nil {
		saleID = *m.SaleID
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		Receiver:    m.Receiver,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		SaleID:      saleID,
		CreatedAt:   m.CreatedAt,
	}
}
