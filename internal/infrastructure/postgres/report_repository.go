package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes (ganancia, ranking, balances).
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetMonthlyProfit agrupa por mes del año: ingresos por líneas vendidas menos
// costo snapshot de compra. Los meses sin ventas no aparecen en el resultado.
func (r *ReportRepo) GetMonthlyProfit(ctx context.Context, year int) ([]repository.MonthlyProfitResult, error) {
	const query = `
	SELECT
	    EXTRACT(YEAR  FROM s.date)::INT                          AS year,
	    EXTRACT(MONTH FROM s.date)::INT                          AS month,
	    COALESCE(SUM(i.quantity * i.unit_price),     0)          AS revenue,
	    COALESCE(SUM(i.quantity * i.purchase_price), 0)          AS cost,
	    COALESCE(SUM(i.quantity * (i.unit_price - i.purchase_price)), 0) AS profit
	FROM sales s
	JOIN sale_items i ON i.sale_id = s.id
	WHERE EXTRACT(YEAR FROM s.date) = $1
	GROUP BY 1, 2
	ORDER BY 2`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("reports.GetMonthlyProfit: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyProfitResult
	for rows.Next() {
		var row repository.MonthlyProfitResult
		if err := rows.Scan(&row.Year, &row.Month, &row.Revenue, &row.Cost, &row.Profit); err != nil {
			return nil, fmt.Errorf("reports.GetMonthlyProfit scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso en el
// período [startDate, endDate). Agrupa por nombre snapshot, así las líneas de
// productos ya eliminados también cuentan.
func (r *ReportRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    i.product_name                                                      AS product_name,
	    SUM(i.quantity)                                                     AS units_sold,
	    SUM(i.quantity * i.unit_price)                                      AS revenue,
	    SUM(i.quantity * (i.unit_price - i.purchase_price))                 AS margin
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	WHERE s.date >= $1 AND s.date < $2
	GROUP BY i.product_name
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductName, &row.UnitsSold, &row.Revenue, &row.Margin); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetAccountBalances calcula el balance por cuenta receptora: movimientos
// (Ingreso - Egreso) más pagos por transferencia de ventas vigentes.
// Los pagos entran por agregación; las ventas nunca escriben movimientos.
func (r *ReportRepo) GetAccountBalances(ctx context.Context) ([]repository.AccountBalanceResult, error) {
	const query = `
	WITH movs AS (
	    SELECT receiver,
	           COALESCE(SUM(CASE WHEN type = 'Ingreso' THEN amount ELSE -amount END), 0) AS movements_net
	    FROM account_movements
	    GROUP BY receiver
	), transfers AS (
	    SELECT receiver, COALESCE(SUM(amount), 0) AS transfers_in
	    FROM payments
	    WHERE method = 'Transferencia' AND receiver IS NOT NULL
	    GROUP BY receiver
	)
	SELECT
	    COALESCE(m.receiver, t.receiver)                         AS receiver,
	    COALESCE(m.movements_net, 0)                             AS movements_net,
	    COALESCE(t.transfers_in, 0)                              AS transfers_in,
	    COALESCE(m.movements_net, 0) + COALESCE(t.transfers_in, 0) AS balance
	FROM movs m
	FULL OUTER JOIN transfers t ON t.receiver = m.receiver
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.GetAccountBalances: %w", err)
	}
	defer rows.Close()

	var results []repository.AccountBalanceResult
	for rows.Next() {
		var row repository.AccountBalanceResult
		if err := rows.Scan(&row.Receiver, &row.MovementsNet, &row.TransfersIn, &row.Balance); err != nil {
			return nil, fmt.Errorf("reports.GetAccountBalances scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
