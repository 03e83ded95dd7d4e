package checkout

import (
	"strings"
	"testing"

	"github.com/casamaria/storefront-backend/internal/cart"
	"github.com/casamaria/storefront-backend/internal/catalog"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormatter(t *testing.T) *Formatter {
	t.Helper()
	moneyFmt, err := money.NewFormatter("es-CO", "$ ")
	require.NoError(t, err)
	f, err := NewFormatter("Casa María Burguer", "+57 321 313 1109", moneyFmt)
	require.NoError(t, err)
	return f
}

func line(id, name string, price int64, discount, qty int) cart.Line {
	return cart.Line{
		Item: catalog.MenuItem{
			ID:              id,
			Name:            name,
			Price:           price,
			Category:        enums.MenuCategoryBurger,
			DiscountPercent: discount,
		},
		Quantity: qty,
	}
}

func TestFormatPickupOrder(t *testing.T) {
	f := testFormatter(t)

	res, err := f.Format(Order{
		Lines: []cart.Line{
			line("a", "Clásica María", 24000, 0, 2),
			line("b", "La Monumental", 29000, 50, 1),
		},
		Delivery: enums.DeliveryMethodPickup,
	})
	require.NoError(t, err)

	assert.Contains(t, res.Message, "Hola *Casa María Burguer*! 👋")
	assert.Contains(t, res.Message, "• 2x *Clásica María*\n   Valor: $ 48.000")
	assert.Contains(t, res.Message, "• 1x *La Monumental* (Oferta -50%)\n   Valor: $ 14.500")
	assert.Contains(t, res.Message, "Subtotal: $ 77.000")
	assert.Contains(t, res.Message, "Ahorro: -$ 14.500")
	assert.Contains(t, res.Message, "*TOTAL A PAGAR: $ 62.500*")
	assert.Contains(t, res.Message, "🥡 *Método:* Recoger en Tienda")
	assert.NotContains(t, res.Message, "Ubicación Exacta")
	assert.NotContains(t, res.Message, "Dirección")
	assert.True(t, strings.HasSuffix(res.Message, "Espero su confirmación. ¡Gracias!"))
}

func TestFormatOmitsSavingsBlockWithoutDiscounts(t *testing.T) {
	f := testFormatter(t)

	res, err := f.Format(Order{
		Lines:    []cart.Line{line("a", "Clásica María", 24000, 0, 1)},
		Delivery: enums.DeliveryMethodPickup,
	})
	require.NoError(t, err)

	assert.NotContains(t, res.Message, "Subtotal:")
	assert.NotContains(t, res.Message, "Ahorro:")
	assert.Contains(t, res.Message, "*TOTAL A PAGAR: $ 24.000*")
}

func TestFormatDeliveryWithCoordsAndAddress(t *testing.T) {
	f := testFormatter(t)

	res, err := f.Format(Order{
		Lines:    []cart.Line{line("a", "Clásica María", 24000, 0, 1)},
		Delivery: enums.DeliveryMethodDelivery,
		Coords:   &Coordinates{Lat: 6.2442, Lng: -75.5812},
		Address:  "Calle 10 25-31, El Poblado",
	})
	require.NoError(t, err)

	assert.Contains(t, res.Message, "🛵 *Método:* Domicilio")
	assert.Contains(t, res.Message, "📍 *Ubicación Exacta (GPS):* https://www.google.com/maps?q=6.2442,-75.5812")
	assert.Contains(t, res.Message, "📝 *Dirección:* Calle 10 25-31, El Poblado")
}

func TestFormatDeliveryNeedsLocation(t *testing.T) {
	f := testFormatter(t)

	_, err := f.Format(Order{
		Lines:    []cart.Line{line("a", "Clásica María", 24000, 0, 1)},
		Delivery: enums.DeliveryMethodDelivery,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestFormatRejectsEmptyOrder(t *testing.T) {
	f := testFormatter(t)

	_, err := f.Format(Order{Delivery: enums.DeliveryMethodPickup})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestWhatsAppURLUsesDigitsOnlyPhone(t *testing.T) {
	f := testFormatter(t)

	res, err := f.Format(Order{
		Lines:    []cart.Line{line("a", "Clásica María", 24000, 0, 1)},
		Delivery: enums.DeliveryMethodPickup,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/573213131109?text="))
	assert.NotContains(t, res.WhatsAppURL, "+")
	assert.Contains(t, res.WhatsAppURL, "%20")
}
