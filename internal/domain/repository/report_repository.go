package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyProfitResult ganancia de un mes: ingresos por líneas vendidas menos
// costo snapshot y costo neto de envío.
type MonthlyProfitResult struct {
	Year    int
	Month   int
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

// TopProductResult producto rankeado por ingresos en un período.
type TopProductResult struct {
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
	Margin      decimal.Decimal
}

// AccountBalanceResult balance de una cuenta receptora: movimientos
// (Ingreso - Egreso) más pagos por transferencia de ventas vigentes.
type AccountBalanceResult struct {
	Receiver      string
	MovementsNet  decimal.Decimal
	TransfersIn   decimal.Decimal
	Balance       decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	GetMonthlyProfit(ctx context.Context, year int) ([]MonthlyProfitResult, error)
	// GetTopProducts ranking por ingresos en el período [startDate, endDate).
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
	GetAccountBalances(ctx context.Context) ([]AccountBalanceResult, error)
}
