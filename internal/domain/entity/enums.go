package entity

// Enums cerrados del dominio con sus etiquetas de presentación.
// Definidos una sola vez y exportados; nunca derivados en runtime de metadatos de la DB.

// Categorías de producto.
const (
	CategoryVinos    = "Vinos"
	CategoryCervezas = "Cervezas"
	CategoryLicores  = "Licores"
	CategoryGaseosas = "Gaseosas"
	CategoryOtros    = "Otros"
)

// CategoryLabels mapea categoría -> etiqueta visible.
var CategoryLabels = map[string]string{
	CategoryVinos:    "Vinos",
	CategoryCervezas: "Cervezas",
	CategoryLicores:  "Licores",
	CategoryGaseosas: "Gaseosas",
	CategoryOtros:    "Otros",
}

// Estados de una venta.
const (
	SaleStatusPendiente  = "Pendiente"  // pagos registrados no cubren el total
	SaleStatusCompletada = "Completada" // suma de pagos == total neto (igualdad decimal exacta)
)

// Métodos de pago.
const (
	PaymentMethodEfectivo      = "Efectivo"
	PaymentMethodTransferencia = "Transferencia" // requiere cuenta receptora
)

// Cuentas receptoras de dinero.
const (
	ReceiverBanco       = "Banco"
	ReceiverMercadoPago = "MercadoPago"
	ReceiverUala        = "Uala"
)

// ReceiverLabels mapea receptor -> etiqueta visible.
var ReceiverLabels = map[string]string{
	ReceiverBanco:       "Banco",
	ReceiverMercadoPago: "Mercado Pago",
	ReceiverUala:        "Ualá",
}

// Tipos de movimiento de cuenta.
const (
	MovementTypeIngreso = "Ingreso"
	MovementTypeEgreso  = "Egreso"
)

// ValidCategory verifica pertenencia al enum de categorías.
func ValidCategory(c string) bool {
	_, ok := CategoryLabels[c]
	return ok
}

// ValidReceiver verifica pertenencia al enum de receptores.
func ValidReceiver(r string) bool {
	_, ok := ReceiverLabels[r]
	return ok
}

// ValidPaymentMethod verifica pertenencia al enum de métodos de pago.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodEfectivo || m == PaymentMethodTransferencia
}

// ValidMovementType verifica pertenencia al enum de tipos de movimiento.
func ValidMovementType(t string) bool {
	return t == MovementTypeIngreso || t == MovementTypeEgreso
}
