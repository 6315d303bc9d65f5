package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, note, total_price, shipping_price, supplier_covered_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Date, nullIfEmpty(s.Note), s.TotalPrice,
		s.ShippingPrice, s.SupplierCoveredAmount, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea snapshot de la venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, purchase_price, is_box, units_per_box)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductName, item.Quantity,
		item.UnitPrice, item.PurchasePrice, item.IsBox, item.UnitsPerBox,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// CreatePayment persiste un pago de la venta.
func (r *SaleRepo) CreatePayment(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, sale_id, method, amount, receiver)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.SaleID, p.Method, p.Amount, p.Receiver)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta; nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, date, note, total_price, shipping_price, supplier_covered_amount, status, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var note *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &note, &s.TotalPrice, &s.ShippingPrice,
		&s.SupplierCoveredAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.Note = derefOrEmpty(note)
	return &s, nil
}

// GetItemsBySaleID obtiene todas las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, purchase_price, is_box, units_per_box
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.PurchasePrice, &it.IsBox, &it.UnitsPerBox); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetPaymentsBySaleID obtiene todos los pagos de una venta.
func (r *SaleRepo) GetPaymentsBySaleID(saleID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, sale_id, method, amount, receiver
		FROM payments WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Receiver); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateHeader actualiza nota, envío, total y estado de la cabecera.
func (r *SaleRepo) UpdateHeader(s *entity.Sale) error {
	query := `
		UPDATE sales
		SET note = $2, shipping_price = $3, supplier_covered_amount = $4, total_price = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, nullIfEmpty(s.Note), s.ShippingPrice, s.SupplierCoveredAmount,
		s.TotalPrice, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// DeletePaymentsBySaleID elimina todos los pagos de la venta (se reemplazan completos en cada update).
func (r *SaleRepo) DeletePaymentsBySaleID(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete payments: %w", err)
	}
	return nil
}

// Delete elimina la venta; la DB cascadea líneas y pagos. Devuelve false si no existía.
func (r *SaleRepo) Delete(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List lista cabeceras según filtros, con paginación y total.
// El filtro por método de pago usa EXISTS sobre payments.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND s.date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND s.date < $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM payments p WHERE p.sale_id = s.id AND p.method = $%d)", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM sales s"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	order := " ORDER BY s.date DESC"
	if filter.SortAsc {
		order = " ORDER BY s.date ASC"
	}
	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT s.id, s.date, s.note, s.total_price, s.shipping_price, s.supplier_covered_amount, s.status, s.created_at, s.updated_at
		FROM sales s` + where + order + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var note *string
		if err := rows.Scan(&s.ID, &s.Date, &note, &s.TotalPrice, &s.ShippingPrice,
			&s.SupplierCoveredAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		s.Note = derefOrEmpty(note)
		list = append(list, &s)
	}
	return list, total, rows.Err()
}
