// Package notify sends order confirmation email. Delivery is always
// best-effort: a failed send is logged and never fails the order.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/config"
	"github.com/ronautumn/hhnyc-api/models"
)

type Mailer struct {
	cfg config.SMTPConfig
	log *zap.SugaredLogger

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg config.SMTPConfig, log *zap.SugaredLogger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// Enabled reports whether SMTP is configured at all.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// SendOrderConfirmation emails the customer (and the back-office copy when
// configured) a summary of the order.
func (m *Mailer) SendOrderConfirmation(o models.Order) error {
	if !m.Enabled() {
		m.log.Infow("smtp not configured, skipping order email", "orderRef", o.OrderRef)
		return nil
	}

	to := []string{o.Email}
	if m.cfg.OrdersTo != "" {
		to = append(to, m.cfg.OrdersTo)
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, to, o)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.From, to, msg); err != nil {
		return fmt.Errorf("send order email: %w", err)
	}
	m.log.Infow("order confirmation sent", "orderRef", o.OrderRef, "to", o.Email)
	return nil
}

func buildMessage(from string, to []string, o models.Order) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: Order Confirmation #%s\r\n", o.OrderRef)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&b, "Hi %s,\r\n\r\nThanks for your order! Here's your summary:\r\n\r\n", o.CustomerName)
	for _, item := range o.Items {
		line := fmt.Sprintf("  %dx %s", item.Quantity, item.Name)
		if item.Variation != "" {
			line += fmt.Sprintf(" (%s)", item.Variation)
		}
		fmt.Fprintf(&b, "%s - $%.2f\r\n", line, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\r\nSubtotal: $%.2f\r\n", o.Subtotal)
	if o.DeliveryMethod == models.MethodDelivery {
		fmt.Fprintf(&b, "Delivery fee: $%.2f\r\n", o.Fee)
		if o.DeliveryDate != "" {
			fmt.Fprintf(&b, "Delivery date: %s\r\n", o.DeliveryDate)
		}
	} else {
		fmt.Fprintf(&b, "Shipping: $%.2f\r\n", o.Fee)
	}
	fmt.Fprintf(&b, "Total: $%.2f\r\n", o.Total)
	return []byte(b.String())
}
