package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GaloDurante/stockApp/internal/domain/entity"
)

func TestValidCategory(t *testing.T) {
	for _, c := range []string{
		entity.CategoryVinos, entity.CategoryCervezas, entity.CategoryLicores,
		entity.CategoryGaseosas, entity.CategoryOtros,
	} {
		assert.True(t, entity.ValidCategory(c), c)
	}
	assert.False(t, entity.ValidCategory("Lácteos"))
	assert.False(t, entity.ValidCategory("vinos"), "los valores son sensibles a mayúsculas")
	assert.False(t, entity.ValidCategory(""))
}

func TestValidReceiver(t *testing.T) {
	for _, r := range []string{entity.ReceiverBanco, entity.ReceiverMercadoPago, entity.ReceiverUala} {
		assert.True(t, entity.ValidReceiver(r), r)
	}
	assert.False(t, entity.ValidReceiver("Paypal"))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMethodEfectivo))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMethodTransferencia))
	assert.False(t, entity.ValidPaymentMethod("Cheque"))
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, entity.ValidMovementType(entity.MovementTypeIngreso))
	assert.True(t, entity.ValidMovementType(entity.MovementTypeEgreso))
	assert.False(t, entity.ValidMovementType("Ajuste"))
}

// Las etiquetas visibles difieren del valor persistido donde corresponde.
func TestReceiverLabels(t *testing.T) {
	assert.Equal(t, "Mercado Pago", entity.ReceiverLabels[entity.ReceiverMercadoPago])
	assert.Equal(t, "Ualá", entity.ReceiverLabels[entity.ReceiverUala])
	assert.Equal(t, "Banco", entity.ReceiverLabels[entity.ReceiverBanco])
}
