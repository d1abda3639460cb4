package checkout

import (
	"fmt"
	"net/url"
	"strings"

	cartdom "sabordigital/internal/domain/cart"
)

// Summary renders the order handoff message. The section order is a contract
// with the WhatsApp deep link consumers: customer, phone, itemized list in
// cart insertion order, subtotal, fee or pickup marker, address (delivery
// only), total, payment label, optional notes, estimated-time footer.
//
// The formatter assumes a non-empty item list; empty carts must be rejected
// upstream.
func Summary(items []cartdom.LineItem, d Draft, deliveryFeeCents int64) string {
	var b strings.Builder

	var subtotal int64
	for _, li := range items {
		subtotal += li.SubtotalCents()
	}

	fee := int64(0)
	if d.IsDelivery() {
		fee = deliveryFeeCents
	}
	total := subtotal + fee

	b.WriteString("*Novo Pedido*\n\n")
	b.WriteString(fmt.Sprintf("*Cliente:* %s\n", d.Name))
	b.WriteString(fmt.Sprintf("*Telefone:* %s\n\n", d.Phone))

	b.WriteString("*Itens do Pedido:*\n")
	for _, li := range items {
		b.WriteString(fmt.Sprintf("- %dx %s (%s)\n", li.Quantity, li.Name, FormatBRL(li.SubtotalCents())))
	}

	b.WriteString(fmt.Sprintf("\n*Subtotal:* %s\n", FormatBRL(subtotal)))

	if d.IsDelivery() {
		b.WriteString(fmt.Sprintf("*Taxa de Entrega:* %s\n", FormatBRL(fee)))
		b.WriteString(fmt.Sprintf("*Endereço:* %s, %s, %s\n", d.Address, d.City, d.ZipCode))
	} else {
		b.WriteString("*Retirada no Local*\n")
	}

	b.WriteString(fmt.Sprintf("*Total:* %s\n", FormatBRL(total)))
	b.WriteString(fmt.Sprintf("*Forma de Pagamento:* %s\n", PaymentMethodLabel(d.PaymentMethod)))

	if d.Notes != "" {
		b.WriteString(fmt.Sprintf("\n*Observações:* %s\n", d.Notes))
	}

	b.WriteString("\n*Tempo estimado:* 30-40 minutos")

	return b.String()
}

// StatusUpdateMessage is the customer notification the admin screen sends
// when an order changes status.
func StatusUpdateMessage(customerName, statusLabel string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Olá %s,\n\n", customerName))
	b.WriteString(fmt.Sprintf("O status do seu pedido foi atualizado para: *%s*.\n\n", statusLabel))
	b.WriteString("Agradecemos a preferência!\n")
	b.WriteString("Equipe Sabor Digital")
	return b.String()
}

// WhatsAppLink builds the wa.me deep link for phone with text pre-filled.
// phone keeps digits only; text is percent-encoded for a URL query component
// (space as %20, not +).
func WhatsAppLink(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(phone), escapeQueryComponent(text))
}

// FormatBRL renders integer centavos as "R$ 12.34".
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d.%02d", sign, cents/100, cents%100)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeQueryComponent percent-encodes text for safe inclusion in a query
// component. url.QueryEscape is form encoding (space -> '+'), which wa.me
// renders literally, so rewrite to %20.
func escapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
