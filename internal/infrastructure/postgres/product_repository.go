package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
	"github.com/GaloDurante/stockApp/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Mantiene name_normalized (sin acentos, minúsculas) para la búsqueda.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, name_normalized, description, stock, purchase_price, sale_price, sale_price_box, units_per_box, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, textutil.Fold(p.Name), nullIfEmpty(p.Description), p.Stock,
		p.PurchasePrice, p.SalePrice, p.SalePriceBox, p.UnitsPerBox, p.Category,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, stock, purchase_price, sale_price, sale_price_box, units_per_box, category, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	var description *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &description, &p.Stock, &p.PurchasePrice, &p.SalePrice,
		&p.SalePriceBox, &p.UnitsPerBox, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.Description = derefOrEmpty(description)
	return &p, nil
}

// Update actualiza los datos del catálogo. No toca Stock (se muta solo vía DiscountStock/RestoreStock).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, name_normalized = $3, description = $4, purchase_price = $5, sale_price = $6, sale_price_box = $7, units_per_box = $8, category = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, textutil.Fold(p.Name), nullIfEmpty(p.Description),
		p.PurchasePrice, p.SalePrice, p.SalePriceBox, p.UnitsPerBox, p.Category, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto. Las líneas de venta que lo referencian quedan con product_id NULL (ON DELETE SET NULL).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DiscountStock descuenta de forma condicional y atómica: el WHERE exige stock
// suficiente, así dos ventas concurrentes nunca pueden llevar el stock a negativo.
// Devuelve false (sin escribir nada) si la condición no se cumplió.
func (r *ProductRepo) DiscountStock(productID string, quantity int64) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("discount stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// RestoreStock suma unidades al stock (borrado de venta o reposición manual).
func (r *ProductRepo) RestoreStock(productID string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}

// List lista productos con filtro por categoría y búsqueda por nombre normalizado, con paginación y total.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND name_normalized LIKE $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `
		SELECT id, name, description, stock, purchase_price, sale_price, sale_price_box, units_per_box, category, created_at, updated_at
		FROM products` + where + fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var description *string
		if err := rows.Scan(&p.ID, &p.Name, &description, &p.Stock, &p.PurchasePrice, &p.SalePrice,
			&p.SalePriceBox, &p.UnitsPerBox, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		p.Description = derefOrEmpty(description)
		list = append(list, &p)
	}
	return list, total, rows.Err()
}
