package entity

// FacilityStock nivel de stock de un medicamento en un centro con sus umbrales.
type FacilityStock struct {
	ID           int64       `json:"id,omitempty"`
	Facility     *Facility   `json:"facility,omitempty"`
	Drug         *Drug       `json:"drug,omitempty"`
	StockLevel   int         `json:"stockLevel"`
	ReOrderLevel *int        `json:"reOrderLevel,omitempty"`
	MinLevel     *int        `json:"minLevel,omitempty"`
	StockBatch   *StockBatch `json:"stockBatch,omitempty"`
	LastUpdated  *Timestamp  `json:"lastUpdated,omitempty"`
}

// Status clasifica el nivel según los umbrales del propio registro.
func (s FacilityStock) Status() StockStatus {
	min, reorder := 0, 0
	if s.MinLevel != nil {
		min = *s.MinLevel
	}
	if s.ReOrderLevel != nil {
		reorder = *s.ReOrderLevel
	}
	return ClassifyStock(s.StockLevel, min, reorder)
}
