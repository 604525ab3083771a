package contracts

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale is used for every number shown to the user.
var Locale = language.MustParse("es-AR")

// FormatAmount renders v with Argentine grouping, e.g. 1234567.5 as
// "1.234.567,5".
func FormatAmount(v float64) string {
	if v == 0 {
		return "0"
	}
	p := message.NewPrinter(Locale)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatNationalID renders a DNI with thousands separators.
func FormatNationalID(id int64) string {
	if id == 0 {
		return "0"
	}
	p := message.NewPrinter(Locale)
	return p.Sprintf("%v", number.Decimal(id))
}
