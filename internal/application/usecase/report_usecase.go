package usecase

import (
	"context"
	"time"

	"github.com/GaloDurante/stockApp/internal/application/dto"
	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura: ganancia mensual, productos más
// vendidos y balances por cuenta receptora.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// MonthlyProfit ganancia por mes de un año.
func (uc *ReportUseCase) MonthlyProfit(ctx context.Context, year int) ([]dto.MonthlyProfitRow, error) {
	if year < 2000 || year > 2100 {
		return nil, domain.ErrInvalidInput
	}
	results, err := uc.repo.GetMonthlyProfit(ctx, year)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.MonthlyProfitRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, dto.MonthlyProfitRow{
			Year:    r.Year,
			Month:   r.Month,
			Revenue: r.Revenue,
			Cost:    r.Cost,
			Profit:  r.Profit,
		})
	}
	return rows, nil
}

// TopProducts productos con mayor ingreso en el período.
func (uc *ReportUseCase) TopProducts(ctx context.Context, from, to string, limit int) ([]dto.TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	start, err := parseReportDate(from, time.Time{})
	if err != nil {
		return nil, err
	}
	end, err := parseReportDate(to, time.Now())
	if err != nil {
		return nil, err
	}
	// La cota superior es exclusiva: un `to` explícito entra con su día completo.
	if to != "" {
		end = end.AddDate(0, 0, 1)
	}
	results, err := uc.repo.GetTopProducts(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.TopProductRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, dto.TopProductRow{
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
			Margin:      r.Margin,
		})
	}
	return rows, nil
}

// AccountBalances balance por cuenta: movimientos netos más transferencias
// recibidas de ventas vigentes. Las cuentas sin actividad salen con balance cero.
func (uc *ReportUseCase) AccountBalances(ctx context.Context) ([]dto.AccountBalanceRow, error) {
	results, err := uc.repo.GetAccountBalances(ctx)
	if err != nil {
		return nil, err
	}
	byReceiver := make(map[string]repository.AccountBalanceResult, len(results))
	for _, r := range results {
		byReceiver[r.Receiver] = r
	}
	// Orden estable sobre el enum, no sobre lo que devuelva la consulta
	receivers := []string{entity.ReceiverBanco, entity.ReceiverMercadoPago, entity.ReceiverUala}
	rows := make([]dto.AccountBalanceRow, 0, len(receivers))
	for _, receiver := range receivers {
		r := byReceiver[receiver]
		rows = append(rows, dto.AccountBalanceRow{
			Receiver:     receiver,
			Label:        entity.ReceiverLabels[receiver],
			MovementsNet: r.MovementsNet,
			TransfersIn:  r.TransfersIn,
			Balance:      r.Balance,
		})
	}
	return rows, nil
}

func parseReportDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}
