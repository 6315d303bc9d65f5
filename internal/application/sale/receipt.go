package sale

import (
	"context"

	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(sale *entity.Sale) ([]byte, error)
}

// ReceiptUseCase arma el comprobante de una venta existente.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator}
}

// GetReceiptPDF carga la venta completa y devuelve los bytes del PDF.
func (uc *ReceiptUseCase) GetReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Items, err = uc.saleRepo.GetItemsBySaleID(id); err != nil {
		return nil, err
	}
	if s.Payments, err = uc.saleRepo.GetPaymentsBySaleID(id); err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceipt(s)
}
