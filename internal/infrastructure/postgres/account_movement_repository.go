package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

var _ repository.AccountMovementRepository = (*AccountMovementRepo)(nil)

// AccountMovementRepo implementación del libro de cuentas sobre PostgreSQL (usable con pool o tx).
type AccountMovementRepo struct {
	q Querier
}

// NewAccountMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountMovementRepository(q Querier) *AccountMovementRepo {
	return &AccountMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *AccountMovementRepo) Create(m *entity.AccountMovement) error {
	query := `
		INSERT INTO account_movements (id, type, receiver, amount, date, description, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.Receiver, m.Amount, m.Date, nullIfEmpty(m.Description), m.SaleID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento; nil si no existe.
func (r *AccountMovementRepo) GetByID(id string) (*entity.AccountMovement, error) {
	query := `
		SELECT id, type, receiver, amount, date, description, sale_id, created_at
		FROM account_movements WHERE id = $1`
	var m entity.AccountMovement
	var description *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Type, &m.Receiver, &m.Amount, &m.Date, &description, &m.SaleID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account movement: %w", err)
	}
	m.Description = derefOrEmpty(description)
	return &m, nil
}

// Update actualiza un movimiento existente.
func (r *AccountMovementRepo) Update(m *entity.AccountMovement) error {
	query := `
		UPDATE account_movements
		SET type = $2, receiver = $3, amount = $4, date = $5, description = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.Receiver, m.Amount, m.Date, nullIfEmpty(m.Description),
	)
	if err != nil {
		return fmt.Errorf("update account movement: %w", err)
	}
	return nil
}

// Delete elimina un movimiento. Devuelve false si no existía.
func (r *AccountMovementRepo) Delete(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM account_movements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete account movement: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List lista movimientos según filtros, con paginación y total.
func (r *AccountMovementRepo) List(filter repository.MovementFilter) ([]*entity.AccountMovement, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Receiver != "" {
		args = append(args, filter.Receiver)
		where += fmt.Sprintf(" AND receiver = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND date < $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM account_movements"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count account movements: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT id, type, receiver, amount, date, description, sale_id, created_at
		FROM account_movements` + where + fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list account movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.AccountMovement
	for rows.Next() {
		var m entity.AccountMovement
		var description *string
		if err := rows.Scan(&m.ID, &m.Type, &m.Receiver, &m.Amount, &m.Date, &description, &m.SaleID, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan account movement: %w", err)
		}
		m.Description = derefOrEmpty(description)
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
