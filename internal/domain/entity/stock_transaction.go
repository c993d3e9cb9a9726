package entity

// TransactionType tipo de movimiento de stock registrado por el backend.
type TransactionType string

const (
	TransactionIncoming     TransactionType = "INCOMING"
	TransactionDispensation TransactionType = "DISPENSATION"
	TransactionTransfer     TransactionType = "TRANSFER"
	TransactionAdjustment   TransactionType = "ADJUSTMENT"
)

// StockTransaction movimiento de stock (entrada, dispensación, traslado o ajuste).
type StockTransaction struct {
	ID                  int64           `json:"id,omitempty"`
	Drug                *Drug           `json:"drug,omitempty"`
	TransactionDate     *Timestamp      `json:"transactionDate,omitempty"`
	TransactionType     TransactionType `json:"transactionType,omitempty"`
	Quantity            int             `json:"quantity"`
	SourceFacility      *Facility       `json:"sourceFacility,omitempty"`
	DestinationFacility *Facility       `json:"destinationFacility,omitempty"`
}

// StockRequest solicitud de reposición de un centro.
type StockRequest struct {
	DrugID               int64 `json:"drugId"`
	RequestingFacilityID int64 `json:"requestingFacilityId"`
	Quantity             int   `json:"quantity"`
}
