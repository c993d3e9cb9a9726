package dto

import "github.com/shopspring/decimal"

// InventoryItemDTO fila de la tabla de inventario.
type InventoryItemDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	QuantityLabel string          `json:"quantity_label"`
	ExpiryDate    string          `json:"expiry_date"` // "N/A" si no vence
	Location      string          `json:"location"`
	Province      string          `json:"province"`
	District      string          `json:"district"`
	Status        string          `json:"status"`
	Value         decimal.Decimal `json:"value"`
}

// InventorySummaryDTO totales del conjunto filtrado (todas las páginas).
type InventorySummaryDTO struct {
	Total    int             `json:"total"`
	Critical int             `json:"critical"`
	Warning  int             `json:"warning"`
	Normal   int             `json:"normal"`
	Excess   int             `json:"excess"`
	Value    decimal.Decimal `json:"value"`
}

// InventoryListDTO respuesta de GET /api/inventory.
type InventoryListDTO struct {
	Items   []InventoryItemDTO  `json:"items"`
	Page    PageResponse        `json:"page"`
	Summary InventorySummaryDTO `json:"summary"`
}

// AddItemRequest body de POST /api/inventory.
// FacilityID opcional: con categoría medications crea también el medicamento y un lote en el backend.
type AddItemRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiry_date"` // YYYY-MM-DD, opcional
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	Province   string `json:"province"`
	District   string `json:"district"`
	FacilityID *int64 `json:"facility_id,omitempty"`
}

// AddItemResponse resultado de agregar un ítem.
type AddItemResponse struct {
	Item    InventoryItemDTO `json:"item"`
	DrugID  *int64           `json:"drug_id,omitempty"`
	BatchID *int64           `json:"batch_id,omitempty"`
}
