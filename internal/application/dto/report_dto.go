package dto

import "github.com/shopspring/decimal"

// MonthlyProfitRow ganancia de un mes del año consultado.
type MonthlyProfitRow struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// TopProductRow producto rankeado por ingresos.
type TopProductRow struct {
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	Margin      decimal.Decimal `json:"margin"`
}

// AccountBalanceRow balance de una cuenta receptora.
type AccountBalanceRow struct {
	Receiver     string          `json:"receiver"`
	Label        string          `json:"label"`
	MovementsNet decimal.Decimal `json:"movements_net"`
	TransfersIn  decimal.Decimal `json:"transfers_in"`
	Balance      decimal.Decimal `json:"balance"`
}
