package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/casamaria/storefront-backend/internal/cart"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/money"
)

// Coordinates is a GPS point captured at checkout.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Order is everything needed to build the WhatsApp order message.
type Order struct {
	Lines    []cart.Line
	Delivery enums.DeliveryMethod
	Coords   *Coordinates
	Address  string
}

// Result carries the rendered message and the ready-to-open WhatsApp link.
type Result struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// Formatter renders orders as Spanish WhatsApp messages. It is pure; it
// performs no I/O.
type Formatter struct {
	siteName string
	phone    string
	fmt      *money.Formatter
}

// NewFormatter builds an order formatter for the given store identity.
func NewFormatter(siteName, whatsappPhone string, moneyFmt *money.Formatter) (*Formatter, error) {
	if moneyFmt == nil {
		return nil, fmt.Errorf("money formatter is required")
	}
	if strings.TrimSpace(whatsappPhone) == "" {
		return nil, fmt.Errorf("whatsapp phone is required")
	}
	return &Formatter{siteName: siteName, phone: whatsappPhone, fmt: moneyFmt}, nil
}

// Format builds the order message and wa.me link. Delivery orders must carry
// coordinates or an address; pickup orders never include a location line.
func (f *Formatter) Format(order Order) (*Result, error) {
	if len(order.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	if !order.Delivery.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery method %q", order.Delivery))
	}
	if order.Delivery == enums.DeliveryMethodDelivery && order.Coords == nil && strings.TrimSpace(order.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery orders need a location or an address")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hola *%s*! 👋\nQuiero realizar el siguiente pedido:\n\n", f.siteName)

	for _, line := range order.Lines {
		fmt.Fprintf(&b, "• %dx *%s*", line.Quantity, line.Item.Name)
		if line.Item.DiscountPercent > 0 {
			fmt.Fprintf(&b, " (Oferta -%d%%)", line.Item.DiscountPercent)
		}
		lineTotal := money.LineTotal(line.Item.Price, line.Item.DiscountPercent, line.Quantity)
		fmt.Fprintf(&b, "\n   Valor: %s\n", f.fmt.Format(lineTotal))
	}

	var c cart.Cart
	for _, line := range order.Lines {
		c.Add(line.Item)
		c.SetQuantity(line.Item.ID, line.Quantity)
	}
	subtotal, total, savings := c.Subtotal(), c.Total(), c.Savings()

	b.WriteString("\n--------------------------------\n")
	if savings.IsPositive() {
		fmt.Fprintf(&b, "Subtotal: %s\n", f.fmt.Format(subtotal))
		fmt.Fprintf(&b, "Ahorro: -%s\n", f.fmt.Format(savings))
	}
	fmt.Fprintf(&b, "*TOTAL A PAGAR: %s*\n", f.fmt.Format(total))
	b.WriteString("--------------------------------\n\n")

	switch order.Delivery {
	case enums.DeliveryMethodPickup:
		b.WriteString("🥡 *Método:* Recoger en Tienda\n")
	case enums.DeliveryMethodDelivery:
		b.WriteString("🛵 *Método:* Domicilio\n")
		if order.Coords != nil {
			fmt.Fprintf(&b, "📍 *Ubicación Exacta (GPS):* https://www.google.com/maps?q=%v,%v\n", order.Coords.Lat, order.Coords.Lng)
		}
		if strings.TrimSpace(order.Address) != "" {
			fmt.Fprintf(&b, "📝 *Dirección:* %s\n", order.Address)
		}
	}

	b.WriteString("\nEspero su confirmación. ¡Gracias!")

	message := b.String()
	return &Result{
		Message:     message,
		WhatsAppURL: fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(f.phone), encodeText(message)),
	}, nil
}

// encodeText percent-encodes the message for the wa.me text parameter.
// Spaces become %20, not +, so the link works outside form contexts.
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
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
