package entity

// MapRegion provincia en el mapa nacional.
type MapRegion struct {
	Code      string // ISO 3166-2, p. ej. ZW-HA
	Name      string
	Status    StockStatus
	Districts []string
}

// StatusColor color de relleno del mapa para cada estado.
func StatusColor(s StockStatus) string {
	switch s {
	case StatusCritical:
		return "#ef4444"
	case StatusWarning:
		return "#f59e0b"
	case StatusNormal:
		return "#22c55e"
	case StatusExcess:
		return "#3b82f6"
	}
	return "#9ca3af"
}
