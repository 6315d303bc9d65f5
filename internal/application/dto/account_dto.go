package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	Type        string          `json:"type"`
	Receiver    string          `json:"receiver"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	SaleID      string          `json:"sale_id,omitempty"`
}

// UpdateMovementRequest body para PUT /api/movements/:id.
type UpdateMovementRequest struct {
	Type        string          `json:"type"`
	Receiver    string          `json:"receiver"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Receiver    string          `json:"receiver"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	SaleID      string          `json:"sale_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListRequest query params para GET /api/movements.
type MovementListRequest struct {
	Receiver string `query:"receiver"`
	Type     string `query:"type"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
	PageRequest
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
