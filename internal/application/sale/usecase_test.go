package sale_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaloDurante/stockApp/internal/application/dto"
	"github.com/GaloDurante/stockApp/internal/application/sale"
	"github.com/GaloDurante/stockApp/internal/domain"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
	"github.com/GaloDurante/stockApp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore guarda el estado compartido; fakeTxRunner toma un snapshot al
// empezar y lo restaura si fn falla, imitando el rollback de la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
	items    map[string][]*entity.SaleItem
	payments map[string][]*entity.Payment

	lastSaleFilter repository.SaleFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[string]*entity.Product{},
		sales:    map[string]*entity.Sale{},
		items:    map[string][]*entity.SaleItem{},
		payments: map[string][]*entity.Payment{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, v := range s.sales {
		cp := *v
		snap.sales[id] = &cp
	}
	for id, list := range s.items {
		cloned := make([]*entity.SaleItem, len(list))
		for i, it := range list {
			cp := *it
			cloned[i] = &cp
		}
		snap.items[id] = cloned
	}
	for id, list := range s.payments {
		cloned := make([]*entity.Payment, len(list))
		for i, p := range list {
			cp := *p
			cloned[i] = &cp
		}
		snap.payments[id] = cloned
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.sales = snap.sales
	s.items = snap.items
	s.payments = snap.payments
}

// ── fakeProductRepo ───────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, int, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		list = append(list, p)
	}
	return list, len(list), nil
}

func (r *fakeProductRepo) DiscountStock(productID string, quantity int64) (bool, error) {
	p, ok := r.store.products[productID]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (r *fakeProductRepo) RestoreStock(productID string, quantity int64) error {
	if p, ok := r.store.products[productID]; ok {
		p.Stock += quantity
	}
	return nil
}

// ── fakeSaleRepo ──────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ store *fakeStore }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	r.store.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.store.items[item.SaleID] = append(r.store.items[item.SaleID], &cp)
	return nil
}

func (r *fakeSaleRepo) CreatePayment(p *entity.Payment) error {
	cp := *p
	r.store.payments[p.SaleID] = append(r.store.payments[p.SaleID], &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	return r.store.items[saleID], nil
}

func (r *fakeSaleRepo) GetPaymentsBySaleID(saleID string) ([]*entity.Payment, error) {
	return r.store.payments[saleID], nil
}

func (r *fakeSaleRepo) UpdateHeader(s *entity.Sale) error {
	cp := *s
	r.store.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) DeletePaymentsBySaleID(saleID string) error {
	delete(r.store.payments, saleID)
	return nil
}

func (r *fakeSaleRepo) Delete(id string) (bool, error) {
	if _, ok := r.store.sales[id]; !ok {
		return false, nil
	}
	delete(r.store.sales, id)
	delete(r.store.items, id)
	delete(r.store.payments, id)
	return true, nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	r.store.lastSaleFilter = filter
	var list []*entity.Sale
	for _, s := range r.store.sales {
		list = append(list, s)
	}
	return list, len(list), nil
}

// ── fakeTxRunner ──────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	store *fakeStore
	// beforeFn corre antes del snapshot: simula escrituras concurrentes
	// que se cuelan entre la validación y la transacción.
	beforeFn func()
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	if tr.beforeFn != nil {
		tr.beforeFn()
		tr.beforeFn = nil
	}
	snap := tr.store.snapshot()
	if err := fn(&fakeSaleRepo{store: tr.store}, &fakeProductRepo{store: tr.store}); err != nil {
		tr.store.restore(snap)
		return err
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestUseCase(store *fakeStore) (*sale.UseCase, *fakeTxRunner) {
	tx := &fakeTxRunner{store: store}
	uc := sale.NewUseCase(tx, &fakeSaleRepo{store: store}, &fakeProductRepo{store: store}, logger.Nop())
	return uc, tx
}

func seedProduct(store *fakeStore, id, name string, stock, unitsPerBox int64, purchase, salePrice string) {
	store.products[id] = &entity.Product{
		ID:            id,
		Name:          name,
		Stock:         stock,
		UnitsPerBox:   unitsPerBox,
		PurchasePrice: decimal.RequireFromString(purchase),
		SalePrice:     decimal.RequireFromString(salePrice),
		Category:      entity.CategoryCervezas,
	}
}

func cashPayment(amount string) dto.SalePaymentRequest {
	return dto.SalePaymentRequest{
		Method: entity.PaymentMethodEfectivo,
		Amount: decimal.RequireFromString(amount),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

// Venta simple: 2 unidades a 150 con stock 10 → stock queda en 8 y total 300.
func TestCreateSale_DescuentaStockYCalculaTotal(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("300")},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(300)), "total = 2×150")
	assert.Equal(t, entity.SaleStatusCompletada, out.Status, "pagos completos al crear")
	assert.EqualValues(t, 8, store.products["p1"].Stock, "stock 10 - 2 = 8")
	require.Len(t, store.items[out.ID], 1)
	assert.True(t, store.items[out.ID][0].PurchasePrice.Equal(decimal.RequireFromString("80")),
		"la línea snapshotea el precio de compra vigente")
}

// Una caja se normaliza a unidades base: 1 caja de 6 contra stock 5 no alcanza,
// y el rechazo no toca nada.
func TestCreateSale_CajaSinStockSuficiente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 5, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("140"), IsBox: true},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("840")},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Cerveza Rubia", stockErr.ProductName)
	assert.EqualValues(t, 5, store.products["p1"].Stock, "el stock no cambia")
	assert.Empty(t, store.sales, "no se persiste ninguna venta")
}

// Caja con stock justo: 1 caja de 6 contra stock 6 pasa y deja el stock en cero.
func TestCreateSale_CajaConStockExacto(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 6, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("140"), IsBox: true},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("840")},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 0, store.products["p1"].Stock)
	assert.EqualValues(t, 6, store.items[out.ID][0].Quantity, "la línea guarda unidades base")
}

// Si otro carrito se lleva las últimas unidades entre la validación y la
// transacción, el descuento condicional falla y todo se deshace.
func TestCreateSale_CarreraPorUltimasUnidades_Rollback(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 2, 6, "80", "150")
	uc, tx := newTestUseCase(store)

	// Venta concurrente que se lleva 1 unidad antes de nuestra tx
	tx.beforeFn = func() { store.products["p1"].Stock = 1 }

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("300")},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 1, store.products["p1"].Stock, "queda lo que dejó la venta concurrente")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

func TestCreateSale_SinLineas(t *testing.T) {
	uc, _ := newTestUseCase(newFakeStore())
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Payments: []dto.SalePaymentRequest{cashPayment("100")},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	uc, _ := newTestUseCase(newFakeStore())
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "nope", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Los pagos no pueden superar el total neto de la venta.
func TestCreateSale_PagosSuperanTotal(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("200"), cashPayment("200")},
	})

	var exceedErr *domain.PaymentsExceedTotalError
	require.ErrorAs(t, err, &exceedErr)
	assert.True(t, exceedErr.Sum.Equal(decimal.NewFromInt(400)))
	assert.True(t, exceedErr.Limit.Equal(decimal.NewFromInt(300)))
	assert.EqualValues(t, 10, store.products["p1"].Stock)
}

// Pagos parciales dejan la venta Pendiente.
func TestCreateSale_PagoParcialQuedaPendiente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("100")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPendiente, out.Status)
}

func TestCreateSale_TransferenciaSinReceptor(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{
			{Method: entity.PaymentMethodTransferencia, Amount: decimal.NewFromInt(150)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrReceiverRequired)
}

func TestCreateSale_MontoNoPositivo(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("0")},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

// La cobertura del proveedor requiere envío y no puede superarlo.
func TestCreateSale_CoberturaSinEnvio(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	covered := decimal.NewFromInt(50)
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("150")},
		},
		SupplierCoveredAmount: &covered,
		Payments:              []dto.SalePaymentRequest{cashPayment("150")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Carrito con varios productos: cada línea descuenta su propio stock y el
// total suma todas las líneas.
func TestCreateSale_CarritoConVariosProductos(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 30, 6, "80", "150")
	seedProduct(store, "p2", "Malbec Reserva", 12, 6, "3500", "6000")
	uc, _ := newTestUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("140"), IsBox: true},
			{ProductID: "p2", Quantity: 3, UnitPrice: decimal.RequireFromString("6000")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("19680")},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(19680)), "2 cajas × 6 × 140 + 3 × 6000")
	assert.Equal(t, entity.SaleStatusCompletada, out.Status)
	assert.EqualValues(t, 18, store.products["p1"].Stock, "30 - 12 unidades de las cajas")
	assert.EqualValues(t, 9, store.products["p2"].Stock)
	require.Len(t, store.items[out.ID], 2)
}

// Catálogo anterior a la restricción de unidades por caja: un producto con
// units_per_box en cero normalizaría la caja a cero unidades y pasaría el
// control de stock sin descontar nada. Se rechaza antes de tocar nada.
func TestCreateSale_CajaConCatalogoSinUnidadesPorCaja(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 0, "80", "150")
	uc, _ := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.RequireFromString("140"), IsBox: true},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("100")},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualValues(t, 10, store.products["p1"].Stock)
	assert.Empty(t, store.sales, "no se persiste una venta de total cero")
}

// El envío neto entra al total: 150 + 200 - 50 = 300.
func TestCreateSale_EnvioNetoEnElTotal(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	shipping := decimal.NewFromInt(200)
	covered := decimal.NewFromInt(50)
	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("150")},
		},
		ShippingPrice:         &shipping,
		SupplierCoveredAmount: &covered,
		Payments:              []dto.SalePaymentRequest{cashPayment("300")},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, entity.SaleStatusCompletada, out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateSale
// ──────────────────────────────────────────────────────────────────────────────

func createSaleForUpdate(t *testing.T, uc *sale.UseCase) *dto.SaleResponse {
	t.Helper()
	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("100")},
	})
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusPendiente, out.Status)
	return out
}

// Completar los pagos en una revisión cambia el estado a Completada.
func TestUpdateSale_CompletaPagos(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)
	created := createSaleForUpdate(t, uc)

	out, err := uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{
		Payments: []dto.SalePaymentRequest{cashPayment("100"), cashPayment("200")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompletada, out.Status)
	assert.Len(t, store.payments[created.ID], 2, "los pagos se reemplazan completos")
	assert.EqualValues(t, 8, store.products["p1"].Stock, "el stock no se toca en la revisión")
}

// Dos pagos de 100 contra un total de 300 no completan la venta.
func TestUpdateSale_PagosParcialesQuedaPendiente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)
	created := createSaleForUpdate(t, uc)

	out, err := uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{
		Payments: []dto.SalePaymentRequest{cashPayment("100"), cashPayment("100")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPendiente, out.Status, "200 pagados contra 300 de total")
}

// Cambiar el envío recalcula el total sobre las líneas guardadas y puede
// devolver la venta a Pendiente.
func TestUpdateSale_EnvioReabrePendiente(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)
	created := createSaleForUpdate(t, uc)

	shipping := decimal.NewFromInt(100)
	out, err := uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{
		ShippingPrice: &shipping,
		Payments:      []dto.SalePaymentRequest{cashPayment("300")},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(400)), "300 de líneas + 100 de envío")
	assert.Equal(t, entity.SaleStatusPendiente, out.Status, "300 pagados ya no igualan 400")
}

func TestUpdateSale_SinPagos(t *testing.T) {
	uc, _ := newTestUseCase(newFakeStore())
	_, err := uc.UpdateSale(context.Background(), "s1", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrNoPayments)
}

func TestUpdateSale_VentaInexistente(t *testing.T) {
	uc, _ := newTestUseCase(newFakeStore())
	_, err := uc.UpdateSale(context.Background(), "nope", dto.UpdateSaleRequest{
		Payments: []dto.SalePaymentRequest{cashPayment("100")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteSale
// ──────────────────────────────────────────────────────────────────────────────

// Borrar la venta devuelve exactamente lo descontado.
func TestDeleteSale_RestituyeStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("140"), IsBox: true},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("840")},
	})
	require.NoError(t, err)
	require.EqualValues(t, 4, store.products["p1"].Stock)

	require.NoError(t, uc.DeleteSale(context.Background(), out.ID))

	assert.EqualValues(t, 10, store.products["p1"].Stock, "vuelven las 6 unidades de la caja")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Empty(t, store.payments)
}

// Repetir alta+baja N veces deja el stock exactamente donde empezó.
func TestSaleLifecycle_CrearYBorrarNVeces(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	for i := 0; i < 5; i++ {
		out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{
				{ProductID: "p1", Quantity: 3, UnitPrice: decimal.RequireFromString("150")},
			},
			Payments: []dto.SalePaymentRequest{cashPayment("450")},
		})
		require.NoError(t, err)
		require.EqualValues(t, 7, store.products["p1"].Stock)
		require.NoError(t, uc.DeleteSale(context.Background(), out.ID))
	}

	assert.EqualValues(t, 10, store.products["p1"].Stock)
	assert.Empty(t, store.sales)
}

// Conservación de stock: tras una secuencia aleatoria de altas y bajas
// intercaladas donde al final todas las ventas terminan eliminadas, el stock
// vuelve exactamente al inicial.
func TestSaleLifecycle_ConservacionDeStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 40, 6, "80", "150")
	uc, _ := newTestUseCase(store)
	rng := rand.New(rand.NewSource(7))

	var ids []string
	for i := 0; i < 12; i++ {
		qty := rng.Int63n(3) + 1
		isBox := rng.Intn(2) == 0
		out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{
				{ProductID: "p1", Quantity: qty, UnitPrice: decimal.RequireFromString("150"), IsBox: isBox},
			},
			Payments: []dto.SalePaymentRequest{cashPayment("100")},
		})
		if err != nil {
			// Sin stock para esta combinación: la venta no existe y no descontó nada.
			var stockErr *domain.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			continue
		}
		ids = append(ids, out.ID)

		// Intercalar alguna baja entre las altas
		if len(ids) > 1 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(ids))
			require.NoError(t, uc.DeleteSale(context.Background(), ids[idx]))
			ids = append(ids[:idx], ids[idx+1:]...)
		}
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for _, id := range ids {
		require.NoError(t, uc.DeleteSale(context.Background(), id))
	}

	assert.EqualValues(t, 40, store.products["p1"].Stock, "cada baja restituye lo que su alta descontó")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Empty(t, store.payments)
}

func TestDeleteSale_VentaInexistente(t *testing.T) {
	uc, _ := newTestUseCase(newFakeStore())
	err := uc.DeleteSale(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Línea huérfana (producto eliminado después de la venta): se borra la venta
// igual y solo se restituye lo restituible.
func TestDeleteSale_LineaHuerfanaSeSalta(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 8, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	p1 := "p1"
	store.sales["s1"] = &entity.Sale{ID: "s1", Status: entity.SaleStatusPendiente}
	store.items["s1"] = []*entity.SaleItem{
		{ID: "i1", SaleID: "s1", ProductID: &p1, ProductName: "Cerveza Rubia", Quantity: 2,
			UnitPrice: decimal.NewFromInt(150), PurchasePrice: decimal.NewFromInt(80)},
		{ID: "i2", SaleID: "s1", ProductID: nil, ProductName: "Vino Borrado", Quantity: 3,
			UnitPrice: decimal.NewFromInt(500), PurchasePrice: decimal.NewFromInt(300)},
	}

	require.NoError(t, uc.DeleteSale(context.Background(), "s1"))

	assert.EqualValues(t, 10, store.products["p1"].Stock, "solo vuelve la línea con producto vigente")
	assert.Empty(t, store.sales)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSale / ListSales
// ──────────────────────────────────────────────────────────────────────────────

// Lo que se crea se relee igual: líneas, pagos, totales y estado.
func TestGetSale_RoundTrip(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	uc, _ := newTestUseCase(store)

	receiver := entity.ReceiverMercadoPago
	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Note: "venta de prueba",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{
			{Method: entity.PaymentMethodTransferencia, Amount: decimal.NewFromInt(300), Receiver: receiver},
		},
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "venta de prueba", got.Note)
	assert.True(t, got.TotalPrice.Equal(created.TotalPrice))
	assert.Equal(t, created.Status, got.Status)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, receiver, got.Payments[0].Receiver)
}

func TestListSales_FiltroInvalido(t *testing.T) {
	uc, _ := newTestUseCase(newFakeStore())

	_, err := uc.ListSales(context.Background(), dto.SaleListRequest{Status: "Cancelada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListSales(context.Background(), dto.SaleListRequest{DateFrom: "30-08-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Filtrar del día X al día X devuelve el día completo: la cota superior que
// llega al repositorio es el inicio del día siguiente, exclusiva.
func TestListSales_DiaFinalEntraCompleto(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestUseCase(store)

	_, err := uc.ListSales(context.Background(), dto.SaleListRequest{
		DateFrom: "2026-08-30",
		DateTo:   "2026-08-30",
	})
	require.NoError(t, err)

	require.NotNil(t, store.lastSaleFilter.DateFrom)
	require.NotNil(t, store.lastSaleFilter.DateTo)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *store.lastSaleFilter.DateFrom)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), *store.lastSaleFilter.DateTo,
		"una venta a las 15:00 del día 30 entra en el filtro")
}

// Un error del repositorio dentro de la transacción burbujea sin envolver.
func TestCreateSale_ErrorDeRepositorioBurbujea(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Cerveza Rubia", 10, 6, "80", "150")
	boom := errors.New("conexión perdida")
	tx := &failingTxRunner{err: boom}
	uc := sale.NewUseCase(tx, &fakeSaleRepo{store: store}, &fakeProductRepo{store: store}, logger.Nop())

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("150")},
		},
		Payments: []dto.SalePaymentRequest{cashPayment("150")},
	})
	assert.ErrorIs(t, err, boom)
}

type failingTxRunner struct{ err error }

func (tr *failingTxRunner) Run(context.Context, func(repository.SaleRepository, repository.ProductRepository) error) error {
	return tr.err
}
