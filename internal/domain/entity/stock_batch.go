package entity

// BatchStatus estado de un lote calculado por el backend.
type BatchStatus string

const (
	BatchInStock    BatchStatus = "IN_STOCK"
	BatchLowStock   BatchStatus = "LOW_STOCK"
	BatchExpired    BatchStatus = "EXPIRED"
	BatchOutOfStock BatchStatus = "OUT_OF_STOCK"
)

// StockBatch lote de un medicamento en un centro, con vencimiento y cantidades.
type StockBatch struct {
	ID                int64       `json:"id,omitempty"`
	Drug              *Drug       `json:"drug,omitempty"`
	Facility          *Facility   `json:"facility,omitempty"`
	BatchNumber       string      `json:"batchNumber"`
	ManufacturingDate *Date       `json:"manufacturingDate,omitempty"`
	ExpiryDate        *Date       `json:"expiryDate,omitempty"`
	InitialQuantity   int         `json:"initialQuantity"`
	CurrentQuantity   int         `json:"currentQuantity"`
	Status            BatchStatus `json:"status,omitempty"`
}
