package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresPhone(t *testing.T) {
	d := draftFixture(DeliveryMethodPickup)
	d.Phone = ""

	errs := d.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)
}

func TestValidateRequiresFullAddressForDelivery(t *testing.T) {
	for _, clear := range []func(*Draft){
		func(d *Draft) { d.Address = "" },
		func(d *Draft) { d.City = "" },
		func(d *Draft) { d.ZipCode = "" },
	} {
		d := draftFixture(DeliveryMethodDelivery)
		clear(&d)

		errs := d.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "address", errs[0].Field)
	}
}

func TestValidatePickupIgnoresAddress(t *testing.T) {
	d := draftFixture(DeliveryMethodPickup)
	d.Address, d.City, d.ZipCode = "", "", ""

	assert.Nil(t, d.Validate())
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	d := draftFixture(DeliveryMethodPickup)
	d.DeliveryMethod = "drone"
	d.PaymentMethod = "barter"

	errs := d.Validate()
	require.Len(t, errs, 2)
}

func TestNormalizeDefaultsAndTrims(t *testing.T) {
	d := Draft{Name: "  Ana ", Phone: " 83 9 "}
	d.Normalize()

	assert.Equal(t, "Ana", d.Name)
	assert.Equal(t, "83 9", d.Phone)
	assert.Equal(t, DeliveryMethodDelivery, d.DeliveryMethod)
	assert.Equal(t, PaymentCreditCard, d.PaymentMethod)
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Cartão de Crédito", PaymentMethodLabel(PaymentCreditCard))
	assert.Equal(t, "Cartão de Débito", PaymentMethodLabel(PaymentDebitCard))
	assert.Equal(t, "PIX", PaymentMethodLabel(PaymentPix))
	assert.Equal(t, "Dinheiro", PaymentMethodLabel(PaymentCash))
}
