package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "sabordigital/internal/domain/order"
)

// EmailClient abstracts the concrete mail transport (SendGrid, SMTP).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer emails the restaurant inbox whenever a checkout lands. It
// satisfies the checkout usecase's OrderNotifier port.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

func NewOrderMailer(client EmailClient, fromAddress, toAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

// NotifyNewOrder sends the order summary as plain text. The summary is
// the same message the customer carries into WhatsApp, so the kitchen
// sees exactly what the customer sent.
func (m *OrderMailer) NotifyNewOrder(ctx context.Context, o orderdom.Order, summary string) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order mailer is not configured")
	}

	subject := fmt.Sprintf("Novo pedido #%s - %s", shortID(o.ID), o.CustomerName)
	return m.client.Send(ctx, m.fromAddress, m.toAddress, subject, summary)
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
