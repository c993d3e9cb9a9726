package entity

import "github.com/shopspring/decimal"

// ItemCategory categoría de un ítem del inventario del dashboard.
type ItemCategory string

const (
	CategoryMedications ItemCategory = "medications"
	CategorySupplies    ItemCategory = "supplies"
	CategoryEquipment   ItemCategory = "equipment"
	CategoryVaccines    ItemCategory = "vaccines"
	CategoryDisposables ItemCategory = "disposables"
	CategoryPPE         ItemCategory = "ppe"
)

// ChartCategories categorías que muestran el gráfico y la tabla provincial.
var ChartCategories = []ItemCategory{CategoryMedications, CategorySupplies, CategoryEquipment, CategoryVaccines}

// Valid indica si la categoría es conocida.
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryMedications, CategorySupplies, CategoryEquipment,
		CategoryVaccines, CategoryDisposables, CategoryPPE:
		return true
	}
	return false
}

// Label nombre legible de la categoría.
func (c ItemCategory) Label() string {
	switch c {
	case CategoryMedications:
		return "Medications"
	case CategorySupplies:
		return "Medical Supplies"
	case CategoryEquipment:
		return "Equipment"
	case CategoryVaccines:
		return "Vaccines"
	case CategoryDisposables:
		return "Disposables"
	case CategoryPPE:
		return "PPE"
	}
	return string(c)
}

// InventoryItem fila de la tabla de inventario: un ítem en un centro de salud.
// ExpiryDate nil significa que el ítem no vence (equipos, insumos).
type InventoryItem struct {
	ID           string
	Name         string
	Category     ItemCategory
	Quantity     int
	Unit         string
	ExpiryDate   *Date
	Location     string
	Province     string
	District     string
	MinLevel     int
	ReorderLevel int
	UnitPrice    decimal.Decimal
}

// Status semáforo del ítem según sus umbrales.
func (i InventoryItem) Status() StockStatus {
	return ClassifyStock(i.Quantity, i.MinLevel, i.ReorderLevel)
}

// Value valor del stock (cantidad * precio unitario).
func (i InventoryItem) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
