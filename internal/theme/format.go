package theme

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.MustParse("es-AR"))

// FormatPrice renders a price in pesos with Argentine digit grouping.
// A nil price renders as an empty string.
func FormatPrice(price *int) string {
	if price == nil {
		return ""
	}
	return pricePrinter.Sprintf("$%d", *price)
}
