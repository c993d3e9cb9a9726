package entity

// AlertType tipo de alerta de stock.
type AlertType string

const (
	AlertLowStock AlertType = "low"
	AlertExpiry   AlertType = "expiry"
)

// StockAlert alerta de stock bajo o de vencimiento próximo en un centro.
// Severity solo toma critical o warning.
type StockAlert struct {
	ID            int
	Type          AlertType
	Severity      StockStatus
	Item          string
	Location      string
	Province      string
	District      string
	Remaining     int    // solo AlertLowStock
	Unit          string // solo AlertLowStock
	ExpiresInDays int    // solo AlertExpiry
}
