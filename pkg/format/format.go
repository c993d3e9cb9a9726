// Package format formatea cifras para el dashboard, el CLI y los reportes PDF.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// El dashboard se usa en Zimbabue: separador de miles "," y decimal ".".
var printer = message.NewPrinter(language.BritishEnglish)

// Int formatea un entero con separador de miles (1250 -> "1,250").
func Int(n int) string {
	return printer.Sprintf("%d", n)
}

// Quantity formatea una cantidad con su unidad ("1,250 tablets").
// La unidad se pluraliza de forma simple cuando n != 1.
func Quantity(n int, unit string) string {
	if unit == "" {
		return Int(n)
	}
	if n != 1 && unit[len(unit)-1] != 's' {
		if unit[len(unit)-1] == 'x' {
			unit += "es"
		} else {
			unit += "s"
		}
	}
	return Int(n) + " " + unit
}

// Money formatea un monto con dos decimales y separador de miles ("$ 12,345.50").
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$ %.2f", f)
}

// Percent formatea un porcentaje con un decimal ("2.5%").
func Percent(f float64) string {
	return printer.Sprintf("%.1f%%", f)
}

// Ago describe cuánto hace que ocurrió algo ("2h ago"), como en la actividad reciente.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return printer.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return printer.Sprintf("%dh ago", int(d.Hours()))
	default:
		return printer.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
