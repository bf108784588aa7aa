package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"trem-do-bem/internal/model"
)

// countryPrefix is prepended to numbers that do not already carry it.
const countryPrefix = "55"

// NormalizePhone strips everything but digits and makes sure the number
// starts with the Brazilian country code. It reports false when no digits remain.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", false
	}
	if strings.HasPrefix(digits, countryPrefix) {
		return digits, true
	}
	return countryPrefix + digits, true
}

// StatusLabel returns the pt-BR label shown to customers.
func StatusLabel(status model.OrderStatus) string {
	switch status {
	case model.StatusPending:
		return "Pendente"
	case model.StatusInDelivery:
		return "Em entrega"
	case model.StatusDelivered:
		return "Entregue"
	case model.StatusCanceled:
		return "Cancelado"
	default:
		return string(status)
	}
}

// FormatBRL renders an amount as "R$ 1.234,56".
func FormatBRL(amount float64) string {
	fixed := decimal.NewFromFloat(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	return fmt.Sprintf("R$ %s%s,%s", sign, grouped.String(), frac)
}

// RenderOrder builds the customer-facing text for an order update.
func RenderOrder(order *model.Order) string {
	lines := []string{
		"🛒 *Trem do Bem*",
		fmt.Sprintf("Pedido: *%s*", order.ID),
		fmt.Sprintf("Status: *%s*", StatusLabel(order.Status)),
		"",
		"📦 *Itens:*",
	}

	if len(order.Items) == 0 {
		lines = append(lines, "—")
	}
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %s — %dg (%s)", item.Name, item.Grams, FormatBRL(item.LineTotal)))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("💰 *Subtotal:* %s", FormatBRL(order.Totals.Subtotal)),
		"",
		fmt.Sprintf("📍 *Entrega:* %s", order.Customer.Address),
	)
	if order.Customer.Reference != "" {
		lines = append(lines, fmt.Sprintf("🧭 *Ref:* %s", order.Customer.Reference))
	}
	if order.Notes != "" {
		lines = append(lines, fmt.Sprintf("📝 *Obs:* %s", order.Notes))
	}

	return strings.Join(lines, "\n")
}

// Message is a resolved outbound notification. Phone is raw; the notifier normalizes it.
type Message struct {
	Phone   string
	Text    string
	OrderID string
	Status  model.OrderStatus
}

// NewOrderMessage renders an order update addressed to its customer.
func NewOrderMessage(order *model.Order) Message {
	return Message{
		Phone:   order.Customer.Phone,
		Text:    RenderOrder(order),
		OrderID: order.ID,
		Status:  order.Status,
	}
}
