package checkout

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDraft = errors.New("checkout: invalid draft")
	ErrEmptyCart    = errors.New("checkout: cart is empty")
)

// DeliveryMethod selects how the order reaches the customer.
type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodPickup   DeliveryMethod = "pickup"
)

// PaymentMethod is the customer's declared payment choice. Payment itself is
// settled out of band (on delivery / at the counter).
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentCash       PaymentMethod = "cash"
)

// PaymentMethodLabel returns the customer-facing label for a payment method.
func PaymentMethodLabel(m PaymentMethod) string {
	switch m {
	case PaymentCreditCard:
		return "Cartão de Crédito"
	case PaymentDebitCard:
		return "Cartão de Débito"
	case PaymentPix:
		return "PIX"
	case PaymentCash:
		return "Dinheiro"
	default:
		return string(m)
	}
}

// Draft is the transient set of form fields collected to finalize an order.
// It exists only for the duration of the checkout session and is never
// persisted as-is.
type Draft struct {
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	ZipCode        string         `json:"zipCode"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	Notes          string         `json:"notes"`
}

// FieldError is a recoverable, user-facing validation problem. These are
// values, not faults: the caller keeps the form open and shows Message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Normalize trims every field and defaults the enums.
func (d *Draft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.ZipCode = strings.TrimSpace(d.ZipCode)
	d.Notes = strings.TrimSpace(d.Notes)
	if d.DeliveryMethod == "" {
		d.DeliveryMethod = DeliveryMethodDelivery
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = PaymentCreditCard
	}
}

// Validate checks the draft. Phone is always required; the address block is
// required only for delivery. Returns nil when the draft is submittable.
func (d Draft) Validate() []FieldError {
	var errs []FieldError

	if d.Phone == "" {
		errs = append(errs, FieldError{
			Field:   "phone",
			Message: "Por favor, informe um telefone para contato",
		})
	}

	switch d.DeliveryMethod {
	case DeliveryMethodDelivery:
		if d.Address == "" || d.City == "" || d.ZipCode == "" {
			errs = append(errs, FieldError{
				Field:   "address",
				Message: "Por favor, preencha o endereço de entrega completo",
			})
		}
	case DeliveryMethodPickup:
		// no address needed
	default:
		errs = append(errs, FieldError{
			Field:   "deliveryMethod",
			Message: "Método de entrega inválido",
		})
	}

	switch d.PaymentMethod {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentCash:
	default:
		errs = append(errs, FieldError{
			Field:   "paymentMethod",
			Message: "Forma de pagamento inválida",
		})
	}

	return errs
}

// IsDelivery reports whether the flat delivery fee applies.
func (d Draft) IsDelivery() bool {
	return d.DeliveryMethod == DeliveryMethodDelivery
}
