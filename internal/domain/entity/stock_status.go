package entity

// StockStatus semáforo de stock usado por tablas, alertas y mapa.
type StockStatus string

const (
	StatusCritical StockStatus = "critical"
	StatusWarning  StockStatus = "warning"
	StatusNormal   StockStatus = "normal"
	StatusExcess   StockStatus = "excess"
	StatusUnknown  StockStatus = "unknown"
)

// excessFactor múltiplo del punto de reorden a partir del cual hay sobre-stock.
const excessFactor = 3

// Valid indica si el estado es uno de los filtrables.
func (s StockStatus) Valid() bool {
	switch s {
	case StatusCritical, StatusWarning, StatusNormal, StatusExcess:
		return true
	}
	return false
}

// Severity orden de gravedad (mayor = más grave). Sirve para ordenar y para
// elegir el peor estado de un conjunto.
func (s StockStatus) Severity() int {
	switch s {
	case StatusCritical:
		return 3
	case StatusWarning:
		return 2
	case StatusNormal:
		return 1
	case StatusExcess:
		return 0
	}
	return -1
}

// ClassifyStock clasifica una cantidad contra los umbrales mínimo y de reorden.
//   - qty <= min (o qty == 0)            → critical
//   - qty <= reorder                     → warning
//   - qty > reorder*3 (con reorder > 0)  → excess
//   - resto                              → normal
func ClassifyStock(qty, minLevel, reorderLevel int) StockStatus {
	switch {
	case qty <= 0 || (minLevel > 0 && qty <= minLevel):
		return StatusCritical
	case reorderLevel > 0 && qty <= reorderLevel:
		return StatusWarning
	case reorderLevel > 0 && qty > reorderLevel*excessFactor:
		return StatusExcess
	}
	return StatusNormal
}
