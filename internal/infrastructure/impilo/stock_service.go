package impilo

import (
	"context"
	"time"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// StockService medicamentos, lotes, movimientos, solicitudes y reportes de stock.
type StockService struct {
	Drugs         *DrugService
	Batches       *BatchService
	Transactions  *TransactionService
	Requests      *RequestService
	FacilityStock *FacilityStockService
	Reports       *ReportService
}

func NewStockService(client *Client) *StockService {
	return &StockService{
		Drugs:         &DrugService{client: client},
		Batches:       &BatchService{client: client},
		Transactions:  &TransactionService{client: client},
		Requests:      &RequestService{client: client},
		FacilityStock: &FacilityStockService{client: client},
		Reports:       &ReportService{client: client},
	}
}

// ── Medicamentos ─────────────────────────────────────────────────────────────

type DrugService struct {
	client *Client
}

// GetAll GET /stock/drugs paginado.
func (s *DrugService) GetAll(ctx context.Context, p entity.Pageable) (*entity.Page[entity.Drug], error) {
	var out entity.Page[entity.Drug]
	if err := s.client.Get(ctx, "/stock/drugs", Params{"pageable": p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add POST /stock/drug.
func (s *DrugService) Add(ctx context.Context, in entity.Drug) (*entity.Drug, error) {
	var out entity.Drug
	if err := s.client.Post(ctx, "/stock/drug", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LowStock GET /stock/low-stock.
func (s *DrugService) LowStock(ctx context.Context) ([]entity.Drug, error) {
	var out []entity.Drug
	if err := s.client.Get(ctx, "/stock/low-stock", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Critical GET /stock/critical?threshold=.
func (s *DrugService) Critical(ctx context.Context, threshold int) ([]entity.Drug, error) {
	var out []entity.Drug
	if err := s.client.Get(ctx, "/stock/critical", Params{"threshold": threshold}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Lotes ────────────────────────────────────────────────────────────────────

type BatchService struct {
	client *Client
}

// Add POST /stock/batch/{drugId}?facilityId=.
func (s *BatchService) Add(ctx context.Context, drugID, facilityID int64, in entity.StockBatch) (*entity.StockBatch, error) {
	var out entity.StockBatch
	if err := s.client.Post(ctx, "/stock/batch/"+id(drugID), in, Params{"facilityId": facilityID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustQuantity PUT /stock/adjust/{batchId}?newQuantity=&reason=.
func (s *BatchService) AdjustQuantity(ctx context.Context, batchID int64, newQuantity int, reason string) (*entity.StockBatch, error) {
	var out entity.StockBatch
	params := Params{"newQuantity": newQuantity, "reason": reason}
	if err := s.client.Put(ctx, "/stock/adjust/"+id(batchID), nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByFacility GET /stock/facility/{facilityId}/stock.
func (s *BatchService) GetByFacility(ctx context.Context, facilityID int64) ([]entity.StockBatch, error) {
	var out []entity.StockBatch
	if err := s.client.Get(ctx, "/stock/facility/"+id(facilityID)+"/stock", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type TransactionService struct {
	client *Client
}

// Transfer POST /stock/transfer entre dos centros.
func (s *TransactionService) Transfer(ctx context.Context, drugID int64, quantity int, sourceFacilityID, destinationFacilityID int64) (*entity.StockTransaction, error) {
	var out entity.StockTransaction
	params := Params{
		"drugId":                drugID,
		"quantity":              quantity,
		"sourceFacilityId":      sourceFacilityID,
		"destinationFacilityId": destinationFacilityID,
	}
	if err := s.client.Post(ctx, "/stock/transfer", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dispense POST /stock/dispense.
func (s *TransactionService) Dispense(ctx context.Context, drugID int64, quantity int, facilityID int64) (*entity.StockTransaction, error) {
	var out entity.StockTransaction
	params := Params{"drugId": drugID, "quantity": quantity, "facilityId": facilityID}
	if err := s.client.Post(ctx, "/stock/dispense", nil, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History GET /stock/history/{drugId}?startDate=&endDate= (ISO-8601 en UTC).
func (s *TransactionService) History(ctx context.Context, drugID int64, start, end time.Time) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	params := Params{"startDate": start, "endDate": end}
	if err := s.client.Get(ctx, "/stock/history/"+id(drugID), params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Solicitudes ──────────────────────────────────────────────────────────────

type RequestService struct {
	client *Client
}

// Create POST /stock/request. La respuesta no tiene forma fija.
func (s *RequestService) Create(ctx context.Context, in entity.StockRequest) (any, error) {
	var out any
	if err := s.client.Post(ctx, "/stock/request", in, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Stock por centro ─────────────────────────────────────────────────────────

type FacilityStockService struct {
	client *Client
}

func (s *FacilityStockService) GetAll(ctx context.Context) ([]entity.FacilityStock, error) {
	var out []entity.FacilityStock
	if err := s.client.Get(ctx, "/facility-stock", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FacilityStockService) GetByID(ctx context.Context, stockID int64) (*entity.FacilityStock, error) {
	var out entity.FacilityStock
	if err := s.client.Get(ctx, "/facility-stock/"+id(stockID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityStockService) Save(ctx context.Context, in entity.FacilityStock) (*entity.FacilityStock, error) {
	var out entity.FacilityStock
	if err := s.client.Post(ctx, "/facility-stock", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityStockService) Delete(ctx context.Context, stockID int64) error {
	return s.client.Delete(ctx, "/facility-stock/"+id(stockID), nil, nil)
}

// ── Reportes ─────────────────────────────────────────────────────────────────

type ReportService struct {
	client *Client
}

// StockReport GET /stock/report.
func (s *ReportService) StockReport(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := s.client.Get(ctx, "/stock/report", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StockLevelsByFacility GET /stock/facility-stock-levels: centro -> medicamento -> cantidad.
func (s *ReportService) StockLevelsByFacility(ctx context.Context) (map[string]map[string]int, error) {
	var out map[string]map[string]int
	if err := s.client.Get(ctx, "/stock/facility-stock-levels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
