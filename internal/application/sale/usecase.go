package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GaloDurante/stockApp/internal/application/dto"
	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
	"github.com/GaloDurante/stockApp/pkg/logger"
)

// UseCase orquesta el ciclo de vida de una venta de forma transaccional:
// alta (con descuento de stock), revisión de pagos y baja (con restitución de stock).
type UseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, productRepo repository.ProductRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo, productRepo: productRepo, log: log}
}

// CreateSale valida el carrito y los pagos, calcula el total neto y persiste
// todo en una sola transacción: cabecera, líneas snapshot, descuento condicional
// de stock por línea y pagos. Cualquier falla deshace todos los escritos.
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	if err := validateShipping(in.ShippingPrice, in.SupplierCoveredAmount); err != nil {
		return nil, err
	}
	if err := validatePayments(in.Payments); err != nil {
		return nil, err
	}

	// Validar productos y armar líneas (fuera de la tx, solo lectura).
	// La cantidad se normaliza a unidades base; el chequeo definitivo de stock
	// lo hace el descuento condicional dentro de la tx.
	now := time.Now()
	saleID := uuid.New().String()
	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		normalized := entity.NormalizedQuantity(it.Quantity, it.IsBox, product.UnitsPerBox)
		// Catálogo corrupto (units_per_box en cero) normalizaría a cero y
		// saltearía el control de stock con una venta de total cero.
		if normalized <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if normalized > product.Stock {
			return nil, &domain.InsufficientStockError{ProductName: product.Name}
		}
		productID := product.ID
		items = append(items, &entity.SaleItem{
			ID:            uuid.New().String(),
			SaleID:        saleID,
			ProductID:     &productID,
			ProductName:   product.Name,
			Quantity:      normalized,
			UnitPrice:     it.UnitPrice,
			PurchasePrice: product.PurchasePrice,
			IsBox:         it.IsBox,
			UnitsPerBox:   product.UnitsPerBox,
		})
	}

	netTotal := entity.NetTotal(entity.ItemsTotal(items), in.ShippingPrice, in.SupplierCoveredAmount)
	payments := buildPayments(saleID, in.Payments)
	sum := entity.PaymentsSum(payments)
	if sum.GreaterThan(netTotal) {
		return nil, &domain.PaymentsExceedTotalError{Sum: sum, Limit: netTotal}
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}
	s := &entity.Sale{
		ID:                    saleID,
		Date:                  date,
		Note:                  in.Note,
		TotalPrice:            netTotal,
		ShippingPrice:         in.ShippingPrice,
		SupplierCoveredAmount: in.SupplierCoveredAmount,
		Status:                entity.DeriveStatus(sum, netTotal),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	// Transacción: todo o nada. El descuento condicional de stock es la
	// barrera contra sobreventa bajo concurrencia: si otro carrito tomó las
	// últimas unidades, el UPDATE no afecta filas y se hace rollback completo.
	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		if err := saleRepo.Create(s); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			ok, err := productRepo.DiscountStock(*item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{ProductName: item.ProductName}
			}
		}
		for _, p := range payments {
			if err := saleRepo.CreatePayment(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Items = items
	s.Payments = payments
	return toResponse(s), nil
}

// UpdateSale revisa nota, envío y pagos de una venta existente y recalcula el
// estado con la misma regla que el alta: Completada sii la suma de pagos
// iguala el total neto. Las líneas y el stock no se tocan.
// El estado resultante puede diferir del que asumía el caller; debe releerse.
func (uc *UseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Payments) == 0 {
		return nil, domain.ErrNoPayments
	}
	if err := validateShipping(in.ShippingPrice, in.SupplierCoveredAmount); err != nil {
		return nil, err
	}
	if err := validatePayments(in.Payments); err != nil {
		return nil, err
	}

	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}

	netTotal := entity.NetTotal(entity.ItemsTotal(items), in.ShippingPrice, in.SupplierCoveredAmount)
	payments := buildPayments(id, in.Payments)
	sum := entity.PaymentsSum(payments)

	s.Note = in.Note
	s.ShippingPrice = in.ShippingPrice
	s.SupplierCoveredAmount = in.SupplierCoveredAmount
	s.TotalPrice = netTotal
	s.Status = entity.DeriveStatus(sum, netTotal)
	s.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, _ repository.ProductRepository) error {
		if err := saleRepo.UpdateHeader(s); err != nil {
			return err
		}
		if err := saleRepo.DeletePaymentsBySaleID(id); err != nil {
			return err
		}
		for _, p := range payments {
			if err := saleRepo.CreatePayment(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Items = items
	s.Payments = payments
	return toResponse(s), nil
}

// DeleteSale elimina la venta y restituye el stock de cada línea dentro de la
// misma transacción. Las líneas cuyo producto fue eliminado (referencia nil)
// se saltan: su stock no puede restituirse y se deja constancia en el log.
func (uc *UseCase) DeleteSale(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		items, err := saleRepo.GetItemsBySaleID(id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ProductID == nil {
				uc.log.Warn().
					Str("sale_id", id).
					Str("product_name", item.ProductName).
					Int64("quantity", item.Quantity).
					Msg("producto eliminado: stock de la línea no restituible")
				continue
			}
			if err := productRepo.RestoreStock(*item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		ok, err := saleRepo.Delete(id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

// GetSale devuelve la venta completa (cabecera, líneas y pagos).
func (uc *UseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
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
	return toResponse(s), nil
}

// ListSales devuelve una página de resúmenes de venta según los filtros.
func (uc *UseCase) ListSales(ctx context.Context, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	filter := repository.SaleFilter{
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
		SortAsc:       in.Sort == "asc",
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && in.Status != entity.SaleStatusPendiente && in.Status != entity.SaleStatusCompletada {
		return nil, domain.ErrInvalidInput
	}
	var err error
	if filter.DateFrom, err = parseDate(in.DateFrom); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseDateTo(in.DateTo); err != nil {
		return nil, err
	}

	sales, total, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleSummary, 0, len(sales)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, s := range sales {
		out.Items = append(out.Items, dto.SaleSummary{
			ID:         s.ID,
			Date:       s.Date,
			Note:       s.Note,
			TotalPrice: s.TotalPrice,
			Status:     s.Status,
		})
	}
	return out, nil
}

// validatePayments aplica las reglas por pago: método del enum, monto positivo,
// Transferencia con receptor válido. Para Efectivo el receptor se ignora.
func validatePayments(payments []dto.SalePaymentRequest) error {
	for _, p := range payments {
		if !entity.ValidPaymentMethod(p.Method) {
			return domain.ErrInvalidInput
		}
		if !p.Amount.GreaterThan(decimal.Zero) {
			return domain.ErrNegativeAmount
		}
		if p.Method == entity.PaymentMethodTransferencia {
			if p.Receiver == "" {
				return domain.ErrReceiverRequired
			}
			if !entity.ValidReceiver(p.Receiver) {
				return domain.ErrInvalidInput
			}
		}
	}
	return nil
}

// validateShipping: envío no negativo; la cobertura del proveedor solo tiene
// sentido con envío presente y no puede superarlo.
func validateShipping(shipping, covered *decimal.Decimal) error {
	if shipping != nil && shipping.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if covered != nil {
		if shipping == nil {
			return domain.ErrInvalidInput
		}
		if covered.LessThan(decimal.Zero) || covered.GreaterThan(*shipping) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func buildPayments(saleID string, in []dto.SalePaymentRequest) []*entity.Payment {
	payments := make([]*entity.Payment, 0, len(in))
	for _, p := range in {
		var receiver *string
		if p.Method == entity.PaymentMethodTransferencia {
			r := p.Receiver
			receiver = &r
		}
		payments = append(payments, &entity.Payment{
			ID:       uuid.New().String(),
			SaleID:   saleID,
			Method:   p.Method,
			Amount:   p.Amount,
			Receiver: receiver,
		})
	}
	return payments
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// parseDateTo devuelve el inicio del día siguiente: la cota superior del
// filtro es exclusiva, así el día pedido entra completo con sus horas.
func parseDateTo(s string) (*time.Time, error) {
	t, err := parseDate(s)
	if err != nil || t == nil {
		return t, err
	}
	next := t.AddDate(0, 0, 1)
	return &next, nil
}

func toResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:                    s.ID,
		Date:                  s.Date,
		Note:                  s.Note,
		TotalPrice:            s.TotalPrice,
		ShippingPrice:         s.ShippingPrice,
		SupplierCoveredAmount: s.SupplierCoveredAmount,
		Status:                s.Status,
		Items:                 make([]dto.SaleItemResponse, 0, len(s.Items)),
		Payments:              make([]dto.SalePaymentResponse, 0, len(s.Payments)),
	}
	for _, it := range s.Items {
		productID := ""
		if it.ProductID != nil {
			productID = *it.ProductID
		}
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            it.ID,
			ProductID:     productID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			PurchasePrice: it.PurchasePrice,
			IsBox:         it.IsBox,
			UnitsPerBox:   it.UnitsPerBox,
		})
	}
	for _, p := range s.Payments {
		receiver := ""
		if p.Receiver != nil {
			receiver = *p.Receiver
		}
		resp.Payments = append(resp.Payments, dto.SalePaymentResponse{
			ID:       p.ID,
			Method:   p.Method,
			Amount:   p.Amount,
			Receiver: receiver,
		})
	}
	return resp
}
