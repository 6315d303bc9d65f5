package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GaloDurante/stockApp/internal/application/dto"
	"github.com/GaloDurante/stockApp/internal/application/usecase"
	"github.com/GaloDurante/stockApp/internal/domain"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MonthlyProfit godoc
// @Summary      Ganancia mensual del año
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (default: actual)"
// @Success      200   {array}  dto.MonthlyProfitRow
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/monthly-profit [get]
func (h *ReportHandler) MonthlyProfit(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.MonthlyProfit(c.Context(), year)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos por ingreso
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Param        limit      query  int     false  "Cantidad"  default(10)
// @Success      200  {array}  dto.TopProductRow
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context(), c.Query("date_from"), c.Query("date_to"), c.QueryInt("limit", 10))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// AccountBalances godoc
// @Summary      Balance por cuenta receptora
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountBalanceRow
// @Router       /api/reports/balances [get]
func (h *ReportHandler) AccountBalances(c *fiber.Ctx) error {
	out, err := h.uc.AccountBalances(c.Context())
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// reportError mapea los errores de reportes a códigos HTTP.
func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
