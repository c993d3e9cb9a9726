package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/format"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Unidades y ubicaciones aceptadas por el formulario de alta.
var (
	ItemUnits        = []string{"unit", "box", "pack", "tablet", "vial", "bottle"}
	StorageLocations = map[string]string{
		"storage_a":      "Storage Room A",
		"storage_b":      "Storage Room B",
		"pharmacy":       "Pharmacy",
		"refrigerator_1": "Refrigerator 1",
		"exam_room_1":    "Examination Room 1",
		"exam_room_2":    "Examination Room 2",
	}
)

// InventoryUseCase tabla de inventario, exportación PDF y alta de ítems.
type InventoryUseCase struct {
	catalog  repository.CatalogRepository
	activity *ActivityUseCase
	reports  ReportGenerator
	archive  ReportArchive
	client   *impilo.Client
	now      Clock
	log      *logger.Logger
}

// NewInventoryUseCase construye el caso de uso. archive y client pueden ser nil:
// sin archive no se guardan copias; sin client el alta es solo local.
func NewInventoryUseCase(
	catalog repository.CatalogRepository,
	activity *ActivityUseCase,
	reports ReportGenerator,
	archive ReportArchive,
	client *impilo.Client,
	now Clock,
	log *logger.Logger,
) *InventoryUseCase {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{catalog: catalog, activity: activity, reports: reports, archive: archive, client: client, now: now, log: log}
}

// Filter devuelve los ítems que cumplen todos los filtros, ordenados por ID.
func (uc *InventoryUseCase) Filter(ctx context.Context, f InventoryFilter) ([]entity.InventoryItem, error) {
	items, err := uc.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := items[:0:0]
	for _, it := range items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Status != "" && it.Status() != f.Status {
			continue
		}
		if f.Province != "" && !strings.EqualFold(it.Province, f.Province) {
			continue
		}
		if search != "" && !matches(it, search) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matches(it entity.InventoryItem, search string) bool {
	return strings.Contains(strings.ToLower(it.Name), search) ||
		strings.Contains(strings.ToLower(it.ID), search) ||
		strings.Contains(strings.ToLower(it.Location), search)
}

// List pagina el inventario filtrado. page es base 1; perPage por defecto 10.
func (uc *InventoryUseCase) List(ctx context.Context, f InventoryFilter, page, perPage int) (*dto.InventoryListDTO, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}
	items, err := uc.Filter(ctx, f)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	rows := make([]dto.InventoryItemDTO, 0, end-start)
	for _, it := range items[start:end] {
		rows = append(rows, toItemDTO(it))
	}
	return &dto.InventoryListDTO{
		Items:   rows,
		Page:    dto.NewPageResponse(page, perPage, len(items)),
		Summary: summarize(items),
	}, nil
}

// Export genera el PDF del inventario filtrado. Si hay archivo configurado
// guarda una copia y devuelve su clave; un fallo al archivar solo se registra.
func (uc *InventoryUseCase) Export(ctx context.Context, f InventoryFilter, dashboardURL string) ([]byte, string, error) {
	if uc.reports == nil {
		return nil, "", fmt.Errorf("exportar inventario: generador PDF no configurado")
	}
	items, err := uc.Filter(ctx, f)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdf, err := uc.reports.GenerateInventoryPDF(ctx, InventoryReport{
		Filters:      f,
		Items:        items,
		Summary:      summarize(items),
		GeneratedAt:  now,
		DashboardURL: dashboardURL,
	})
	if err != nil {
		return nil, "", fmt.Errorf("exportar inventario: %w", err)
	}
	if uc.archive == nil {
		return pdf, "", nil
	}
	key, err := uc.archive.Put(ctx, ReportFileName(now), pdf)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo archivar el reporte de inventario")
		return pdf, "", nil
	}
	return pdf, key, nil
}

// ReportFileName nombre del archivo PDF exportado.
func ReportFileName(t time.Time) string {
	return "inventory-" + t.UTC().Format("20060102-150405") + ".pdf"
}

// AddItem valida y agrega un ítem al inventario. Con FacilityID y categoría
// medications crea además el medicamento y su lote en el backend usando token.
func (uc *InventoryUseCase) AddItem(ctx context.Context, token, actor string, in dto.AddItemRequest) (*dto.AddItemResponse, error) {
	item, err := uc.validate(in)
	if err != nil {
		return nil, err
	}

	res := &dto.AddItemResponse{}
	if in.FacilityID != nil && item.Category == entity.CategoryMedications {
		if uc.client == nil {
			return nil, fmt.Errorf("%w: backend no configurado", domain.ErrInvalidInput)
		}
		stock := impilo.NewStockService(uc.client.WithToken(token))
		drug, err := stock.Drugs.Add(ctx, entity.Drug{Name: item.Name, MeasurementUnit: measurementUnit(item.Unit)})
		if err != nil {
			return nil, err
		}
		batch, err := stock.Batches.Add(ctx, drug.ID, *in.FacilityID, entity.StockBatch{
			BatchNumber:     "B-" + strings.ToUpper(uuid.NewString()[:8]),
			ExpiryDate:      item.ExpiryDate,
			InitialQuantity: item.Quantity,
			CurrentQuantity: item.Quantity,
		})
		if err != nil {
			// El medicamento ya existe en el backend sin lote; queda para limpieza manual.
			uc.log.Warn().Err(err).Int64("drug_id", drug.ID).Int64("facility_id", *in.FacilityID).
				Msg("medicamento creado sin lote")
			return nil, err
		}
		res.DrugID = &drug.ID
		res.BatchID = &batch.ID
	}

	item, err = uc.catalog.AddItem(ctx, item)
	if err != nil {
		return nil, err
	}
	res.Item = toItemDTO(item)

	if uc.activity != nil {
		uc.activity.Record(ctx, &entity.Activity{
			Actor:    actor,
			Action:   entity.ActionRestock,
			Item:     item.Name,
			Quantity: decimal.NewFromInt(int64(item.Quantity)),
			Unit:     item.Unit,
			Location: item.Location,
			Province: item.Province,
			Note:     in.Notes,
		})
	}
	return res, nil
}

func (uc *InventoryUseCase) validate(in dto.AddItemRequest) (entity.InventoryItem, error) {
	reject := func(msg string) (entity.InventoryItem, error) {
		return entity.InventoryItem{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return reject("name debe tener al menos 2 caracteres")
	}
	cat := entity.ItemCategory(in.Category)
	if !cat.Valid() {
		return reject("category inválida: " + in.Category)
	}
	if in.Quantity < 0 {
		return reject("quantity no puede ser negativa")
	}
	if !contains(ItemUnits, in.Unit) {
		return reject("unit inválida: " + in.Unit)
	}
	location, ok := StorageLocations[in.Location]
	if !ok {
		return reject("location inválida: " + in.Location)
	}

	item := entity.InventoryItem{
		Name:     name,
		Category: cat,
		Quantity: in.Quantity,
		Unit:     in.Unit,
		Location: location,
		Province: in.Province,
		District: in.District,
	}
	if in.ExpiryDate != "" {
		d, err := entity.ParseDate(in.ExpiryDate)
		if err != nil {
			return reject("expiry_date debe ser YYYY-MM-DD")
		}
		if d.DaysUntil(uc.now()) < 0 {
			return reject("expiry_date ya pasó")
		}
		item.ExpiryDate = &d
	}
	return item, nil
}

func measurementUnit(unit string) entity.MeasurementUnit {
	switch unit {
	case "tablet":
		return entity.UnitTablet
	case "vial", "bottle":
		return entity.UnitMilliliter
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ── Mapeo ────────────────────────────────────────────────────────────────────

func toItemDTO(it entity.InventoryItem) dto.InventoryItemDTO {
	expiry := "N/A"
	if it.ExpiryDate != nil {
		expiry = it.ExpiryDate.String()
	}
	return dto.InventoryItemDTO{
		ID:            it.ID,
		Name:          it.Name,
		Category:      string(it.Category),
		CategoryLabel: it.Category.Label(),
		Quantity:      it.Quantity,
		Unit:          it.Unit,
		QuantityLabel: format.Quantity(it.Quantity, it.Unit),
		ExpiryDate:    expiry,
		Location:      it.Location,
		Province:      it.Province,
		District:      it.District,
		Status:        string(it.Status()),
		Value:         it.Value(),
	}
}

func summarize(items []entity.InventoryItem) dto.InventorySummaryDTO {
	s := dto.InventorySummaryDTO{Total: len(items), Value: decimal.Zero}
	for _, it := range items {
		switch it.Status() {
		case entity.StatusCritical:
			s.Critical++
		case entity.StatusWarning:
			s.Warning++
		case entity.StatusExcess:
			s.Excess++
		default:
			s.Normal++
		}
		s.Value = s.Value.Add(it.Value())
	}
	return s
}
