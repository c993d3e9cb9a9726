package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/application/fetch"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
)

// DefaultCriticalThreshold umbral de GET /stock/critical cuando no se indica.
const DefaultCriticalThreshold = 10

// StockUseCase operaciones de stock contra el backend con el token del usuario.
// Las escrituras exitosas quedan en la actividad reciente.
type StockUseCase struct {
	client   *impilo.Client
	activity *ActivityUseCase
}

func NewStockUseCase(client *impilo.Client, activity *ActivityUseCase) *StockUseCase {
	return &StockUseCase{client: client, activity: activity}
}

func (uc *StockUseCase) service(token string) *impilo.StockService {
	return impilo.NewStockService(uc.client.WithToken(token))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

// ── Escrituras ───────────────────────────────────────────────────────────────

// Transfer traslada quantity unidades de un medicamento entre dos centros.
func (uc *StockUseCase) Transfer(ctx context.Context, token, actor string, in dto.TransferRequest) (*entity.StockTransaction, error) {
	switch {
	case in.DrugID <= 0:
		return nil, invalid("drug_id es requerido")
	case in.Quantity <= 0:
		return nil, invalid("quantity debe ser mayor a 0")
	case in.SourceFacilityID <= 0 || in.DestinationFacilityID <= 0:
		return nil, invalid("source_facility_id y destination_facility_id son requeridos")
	case in.SourceFacilityID == in.DestinationFacilityID:
		return nil, invalid("origen y destino deben ser distintos")
	}
	svc := uc.service(token)
	m := fetch.NewMutation(func(ctx context.Context, in dto.TransferRequest) (*entity.StockTransaction, error) {
		return svc.Transactions.Transfer(ctx, in.DrugID, in.Quantity, in.SourceFacilityID, in.DestinationFacilityID)
	}, fetch.MutationOptions[*entity.StockTransaction]{
		OnSuccess: func(tx *entity.StockTransaction) {
			uc.record(ctx, actor, entity.ActionTransfer, drugName(tx.Drug, in.DrugID), in.Quantity,
				"facility #"+strconv.FormatInt(in.DestinationFacilityID, 10), "")
		},
	})
	return m.Mutate(ctx, in)
}

// Dispense registra la dispensación de quantity unidades en un centro.
func (uc *StockUseCase) Dispense(ctx context.Context, token, actor string, in dto.DispenseRequest) (*entity.StockTransaction, error) {
	switch {
	case in.DrugID <= 0:
		return nil, invalid("drug_id es requerido")
	case in.Quantity <= 0:
		return nil, invalid("quantity debe ser mayor a 0")
	case in.FacilityID <= 0:
		return nil, invalid("facility_id es requerido")
	}
	svc := uc.service(token)
	m := fetch.NewMutation(func(ctx context.Context, in dto.DispenseRequest) (*entity.StockTransaction, error) {
		return svc.Transactions.Dispense(ctx, in.DrugID, in.Quantity, in.FacilityID)
	}, fetch.MutationOptions[*entity.StockTransaction]{
		OnSuccess: func(tx *entity.StockTransaction) {
			uc.record(ctx, actor, entity.ActionDispense, drugName(tx.Drug, in.DrugID), in.Quantity,
				"facility #"+strconv.FormatInt(in.FacilityID, 10), "")
		},
	})
	return m.Mutate(ctx, in)
}

// Adjust fija la cantidad de un lote con un motivo obligatorio.
func (uc *StockUseCase) Adjust(ctx context.Context, token, actor string, batchID int64, in dto.AdjustRequest) (*entity.StockBatch, error) {
	switch {
	case batchID <= 0:
		return nil, invalid("id de lote inválido")
	case in.NewQuantity < 0:
		return nil, invalid("new_quantity no puede ser negativa")
	case strings.TrimSpace(in.Reason) == "":
		return nil, invalid("reason es requerido")
	}
	svc := uc.service(token)
	m := fetch.NewMutation(func(ctx context.Context, in dto.AdjustRequest) (*entity.StockBatch, error) {
		return svc.Batches.AdjustQuantity(ctx, batchID, in.NewQuantity, in.Reason)
	}, fetch.MutationOptions[*entity.StockBatch]{
		OnSuccess: func(b *entity.StockBatch) {
			location := ""
			if b.Facility != nil {
				location = b.Facility.Name
			}
			uc.record(ctx, actor, entity.ActionAdjustment, drugName(b.Drug, 0)+" (batch "+b.BatchNumber+")",
				in.NewQuantity, location, in.Reason)
		},
	})
	return m.Mutate(ctx, in)
}

// Request crea una solicitud de reposición.
func (uc *StockUseCase) Request(ctx context.Context, token, actor string, in entity.StockRequest) (any, error) {
	switch {
	case in.DrugID <= 0 || in.RequestingFacilityID <= 0:
		return nil, invalid("drugId y requestingFacilityId son requeridos")
	case in.Quantity <= 0:
		return nil, invalid("quantity debe ser mayor a 0")
	}
	out, err := uc.service(token).Requests.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActionRequest, drugName(nil, in.DrugID), in.Quantity,
		"facility #"+strconv.FormatInt(in.RequestingFacilityID, 10), "")
	return out, nil
}

// SaveFacilityStock crea o actualiza el nivel de stock de un centro.
func (uc *StockUseCase) SaveFacilityStock(ctx context.Context, token, actor string, in entity.FacilityStock) (*entity.FacilityStock, error) {
	if in.StockLevel < 0 {
		return nil, invalid("stockLevel no puede ser negativo")
	}
	out, err := uc.service(token).FacilityStock.Save(ctx, in)
	if err != nil {
		return nil, err
	}
	location := ""
	if out.Facility != nil {
		location = out.Facility.Name
	}
	uc.record(ctx, actor, entity.ActionUpdate, drugName(out.Drug, 0), out.StockLevel, location, "nivel de stock actualizado")
	return out, nil
}

func (uc *StockUseCase) DeleteFacilityStock(ctx context.Context, token string, id int64) error {
	return uc.service(token).FacilityStock.Delete(ctx, id)
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

func (uc *StockUseCase) LowStock(ctx context.Context, token string) ([]entity.Drug, error) {
	return uc.service(token).Drugs.LowStock(ctx)
}

// Critical medicamentos bajo threshold (DefaultCriticalThreshold si es <= 0).
func (uc *StockUseCase) Critical(ctx context.Context, token string, threshold int) ([]entity.Drug, error) {
	if threshold <= 0 {
		threshold = DefaultCriticalThreshold
	}
	return uc.service(token).Drugs.Critical(ctx, threshold)
}

// History movimientos de un medicamento entre start y end.
func (uc *StockUseCase) History(ctx context.Context, token string, drugID int64, start, end time.Time) ([]entity.StockTransaction, error) {
	if end.Before(start) {
		return nil, invalid("endDate anterior a startDate")
	}
	return uc.service(token).Transactions.History(ctx, drugID, start, end)
}

func (uc *StockUseCase) FacilityBatches(ctx context.Context, token string, facilityID int64) ([]entity.StockBatch, error) {
	return uc.service(token).Batches.GetByFacility(ctx, facilityID)
}

func (uc *StockUseCase) FacilityLevels(ctx context.Context, token string) (map[string]map[string]int, error) {
	return uc.service(token).Reports.StockLevelsByFacility(ctx)
}

func (uc *StockUseCase) Report(ctx context.Context, token string) (map[string]any, error) {
	return uc.service(token).Reports.StockReport(ctx)
}

func (uc *StockUseCase) FacilityStock(ctx context.Context, token string) ([]entity.FacilityStock, error) {
	return uc.service(token).FacilityStock.GetAll(ctx)
}

func (uc *StockUseCase) FacilityStockByID(ctx context.Context, token string, id int64) (*entity.FacilityStock, error) {
	return uc.service(token).FacilityStock.GetByID(ctx, id)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (uc *StockUseCase) record(ctx context.Context, actor string, action entity.ActivityAction, item string, qty int, location, note string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, &entity.Activity{
		Actor:    actor,
		Action:   action,
		Item:     item,
		Quantity: decimal.NewFromInt(int64(qty)),
		Unit:     "unit",
		Location: location,
		Note:     note,
	})
}

func drugName(d *entity.Drug, id int64) string {
	if d != nil && d.Name != "" {
		return d.Name
	}
	if d != nil && d.ID > 0 {
		id = d.ID
	}
	return "drug #" + strconv.FormatInt(id, 10)
}
