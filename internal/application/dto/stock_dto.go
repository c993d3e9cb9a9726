package dto

import "github.com/jhoicas/impilo-stock/internal/domain/entity"

// TransferRequest body de POST /api/stock/transfer.
type TransferRequest struct {
	DrugID                int64 `json:"drug_id"`
	Quantity              int   `json:"quantity"`
	SourceFacilityID      int64 `json:"source_facility_id"`
	DestinationFacilityID int64 `json:"destination_facility_id"`
}

// DispenseRequest body de POST /api/stock/dispense.
type DispenseRequest struct {
	DrugID     int64 `json:"drug_id"`
	Quantity   int   `json:"quantity"`
	FacilityID int64 `json:"facility_id"`
}

// AdjustRequest body de PUT /api/stock/batches/:id.
type AdjustRequest struct {
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason"`
}

// DrugsPanelDTO respuesta de GET /api/drugs: la página pedida del panel de
// medicamentos con el estado de la consulta.
type DrugsPanelDTO struct {
	Drugs         []entity.Drug  `json:"drugs"`
	Page          int            `json:"page"` // base 0, como el backend
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
	Search        string         `json:"search,omitempty"`
	Loading       bool           `json:"loading"`
	Error         *ErrorResponse `json:"error,omitempty"`
}
