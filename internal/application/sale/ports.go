package sale

import (
	"context"

	"github.com/GaloDurante/stockApp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de ventas:
// cabecera, líneas, descuento de stock y pagos se confirman o se deshacen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}
