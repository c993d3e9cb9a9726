package dto

import "github.com/shopspring/decimal"

// OverviewDTO respuesta de GET /api/dashboard/overview.
type OverviewDTO struct {
	Cards SummaryCardsDTO `json:"cards"`
	Chart []ChartPointDTO `json:"chart"`
}

// SummaryCardsDTO tarjetas de resumen de la página principal.
type SummaryCardsDTO struct {
	TotalItems int             `json:"total_items"`
	Critical   int             `json:"critical"`
	Warning    int             `json:"warning"`
	Facilities int             `json:"facilities"` // centros con inventario registrado
	Provinces  int             `json:"provinces"`
	StockValue decimal.Decimal `json:"stock_value"`
}

// ChartPointDTO barra del gráfico por provincia.
type ChartPointDTO struct {
	Name        string `json:"name"`
	Medications int    `json:"medications"`
	Supplies    int    `json:"supplies"`
	Equipment   int    `json:"equipment"`
	Vaccines    int    `json:"vaccines"`
}

// StockAlertDTO alerta con su texto y acción sugerida.
type StockAlertDTO struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`     // low | expiry
	Severity string `json:"severity"` // critical | warning
	Item     string `json:"item"`
	Location string `json:"location"`
	Province string `json:"province"`
	District string `json:"district"`
	Detail   string `json:"detail"` // "15 boxes remaining" / "Expires in 7 days"
	Action   string `json:"action"` // Reorder | Review
}

// AlertListDTO respuesta de GET /api/dashboard/alerts.
type AlertListDTO struct {
	Alerts   []StockAlertDTO `json:"alerts"`
	Total    int             `json:"total"`
	Critical int             `json:"critical"`
	Warning  int             `json:"warning"`
	HasMore  bool            `json:"has_more"`
}

// CategoryStockDTO conteo por semáforo de una categoría.
type CategoryStockDTO struct {
	Total    int    `json:"total"`
	Critical int    `json:"critical"`
	Warning  int    `json:"warning"`
	Normal   int    `json:"normal"`
	Status   string `json:"status"`
}

// DistrictStockDTO fila de distrito de la tabla provincial.
type DistrictStockDTO struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	Status     string                      `json:"status"`
	Categories map[string]CategoryStockDTO `json:"categories"`
}

// ProvinceStockDTO fila de provincia; Categories es la suma de sus distritos.
type ProvinceStockDTO struct {
	ID         string                      `json:"id"`
	Code       string                      `json:"code"`
	Name       string                      `json:"name"`
	Status     string                      `json:"status"`
	Categories map[string]CategoryStockDTO `json:"categories"`
	Districts  []DistrictStockDTO          `json:"districts,omitempty"`
}

// MapDistrictDTO distrito dentro de la ficha de una provincia en el mapa.
type MapDistrictDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// MapRegionDTO provincia del mapa nacional.
type MapRegionDTO struct {
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Status    string           `json:"status"`
	Fill      string           `json:"fill"`
	Districts []MapDistrictDTO `json:"districts"`
}

// LegendEntryDTO entrada de la leyenda del mapa.
type LegendEntryDTO struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Fill   string `json:"fill"`
	Count  int    `json:"count"`
}

// NationalMapDTO respuesta de GET /api/dashboard/map.
type NationalMapDTO struct {
	Regions []MapRegionDTO   `json:"regions"`
	Legend  []LegendEntryDTO `json:"legend"`
}

// ActivityDTO entrada de actividad reciente.
type ActivityDTO struct {
	ID          string `json:"id"`
	Actor       string `json:"actor"`
	Initials    string `json:"initials"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Ago         string `json:"ago"`
	OccurredAt  string `json:"occurred_at"`
}
