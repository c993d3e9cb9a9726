package entity

import "github.com/shopspring/decimal"

func init() {
	// El backend intercambia precios como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DrugCategory categoría terapéutica de un medicamento.
type DrugCategory string

const (
	DrugCategoryAntibiotic     DrugCategory = "ANTIBIOTIC"
	DrugCategoryPainkiller     DrugCategory = "PAINKILLER"
	DrugCategoryCardiovascular DrugCategory = "CARDIOVASCULAR"
	DrugCategoryRespiratory    DrugCategory = "RESPIRATORY"
	DrugCategoryMentalHealth   DrugCategory = "MENTAL_HEALTH"
)

// Valid indica si la categoría es una de las que acepta el backend.
func (c DrugCategory) Valid() bool {
	switch c {
	case DrugCategoryAntibiotic, DrugCategoryPainkiller, DrugCategoryCardiovascular,
		DrugCategoryRespiratory, DrugCategoryMentalHealth:
		return true
	}
	return false
}

// MeasurementUnit unidad de medida del medicamento.
type MeasurementUnit string

const (
	UnitTablet     MeasurementUnit = "TABLET"
	UnitCapsule    MeasurementUnit = "CAPSULE"
	UnitMilliliter MeasurementUnit = "MILLILITER"
	UnitGram       MeasurementUnit = "GRAM"
)

// Drug medicamento del catálogo. StockBatches solo viene cuando el backend lo expande.
type Drug struct {
	ID              int64            `json:"id,omitempty"`
	Name            string           `json:"name"`
	GenericName     string           `json:"genericName,omitempty"`
	Manufacturer    string           `json:"manufacturer,omitempty"`
	Category        DrugCategory     `json:"category,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unitPrice,omitempty"`
	MeasurementUnit MeasurementUnit  `json:"measurementUnit,omitempty"`
	StockBatches    []StockBatch     `json:"stockBatches,omitempty"`
}
