package dashboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/sample"
	"github.com/jhoicas/impilo-stock/pkg/apierror"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type fakeReports struct {
	got *dashboard.InventoryReport
	err error
}

func (f *fakeReports) GenerateInventoryPDF(_ context.Context, r dashboard.InventoryReport) ([]byte, error) {
	f.got = &r
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

type fakeArchive struct {
	names []string
	err   error
}

func (f *fakeArchive) Put(_ context.Context, name string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	return "reports/" + name, nil
}

// backend servidor falso del API Impilo: responde por "MÉTODO /ruta" y guarda las peticiones.
type backend struct {
	mu       sync.Mutex
	replies  map[string]reply
	requests []*http.Request
}

type reply struct {
	status int
	body   any
}

func newBackend(t *testing.T, replies map[string]reply) (*backend, *impilo.Client) {
	t.Helper()
	b := &backend{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Clone(context.Background()))
		rep, ok := b.replies[r.Method+" "+r.URL.Path]
		b.mu.Unlock()
		if !ok {
			rep = reply{http.StatusNotFound, map[string]any{"message": "not found"}}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_ = json.NewEncoder(w).Encode(rep.body)
	}))
	t.Cleanup(srv.Close)
	client := impilo.NewClient(impilo.Config{BaseURL: srv.URL + "/api"}, impilo.WithHTTPClient(srv.Client()))
	return b, client
}

func (b *backend) last() *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return nil
	}
	return b.requests[len(b.requests)-1]
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func newActivity() *dashboard.ActivityUseCase {
	return dashboard.NewActivityUseCase(sample.NewActivityRepository(now), clock, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestOverview_TarjetasYGrafico(t *testing.T) {
	uc := dashboard.NewOverviewUseCase(sample.NewCatalog(now))

	res, err := uc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 24, res.Cards.TotalItems)
	assert.Equal(t, 5, res.Cards.Critical)
	assert.Equal(t, 5, res.Cards.Warning)
	assert.Equal(t, 21, res.Cards.Facilities)
	assert.Equal(t, 10, res.Cards.Provinces)
	assert.True(t, decimal.RequireFromString("13906.95").Equal(res.Cards.StockValue))

	require.Len(t, res.Chart, 10)
	assert.Equal(t, "Harare", res.Chart[0].Name)
	assert.Equal(t, 1250, res.Chart[0].Medications)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryList_PaginaYResume(t *testing.T) {
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, nil, nil, nil, clock, nil)
	ctx := context.Background()

	res, err := uc.List(ctx, dashboard.InventoryFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, dto.PageResponse{Page: 1, PerPage: 10, Total: 24, TotalPages: 3}, res.Page)
	assert.Equal(t, 5, res.Summary.Critical)
	assert.Equal(t, 5, res.Summary.Warning)
	assert.Equal(t, 14, res.Summary.Normal)
	assert.Equal(t, "INV001", res.Items[0].ID)
	assert.Equal(t, "15 boxes", res.Items[0].QuantityLabel)
	assert.Equal(t, "N/A", res.Items[0].ExpiryDate)

	last, err := uc.List(ctx, dashboard.InventoryFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Items, 4)

	beyond, err := uc.List(ctx, dashboard.InventoryFilter{}, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 24, beyond.Summary.Total)
}

func TestInventoryFilter(t *testing.T) {
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, nil, nil, nil, clock, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter dashboard.InventoryFilter
		want   int
	}{
		{"categoria", dashboard.InventoryFilter{Category: entity.CategoryVaccines}, 4},
		{"estado", dashboard.InventoryFilter{Status: entity.StatusCritical}, 5},
		{"provincia", dashboard.InventoryFilter{Province: "harare"}, 4},
		{"busqueda", dashboard.InventoryFilter{Search: "GLOVES"}, 2},
		{"busqueda por codigo", dashboard.InventoryFilter{Search: "inv010"}, 1},
		{"combinado", dashboard.InventoryFilter{Category: entity.CategorySupplies, Status: entity.StatusCritical}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := uc.Filter(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, items, tc.want)
		})
	}
}

func TestInventoryExport_GeneraYArchiva(t *testing.T) {
	reports := &fakeReports{}
	archive := &fakeArchive{}
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, reports, archive, nil, clock, nil)

	pdf, key, err := uc.Export(context.Background(), dashboard.InventoryFilter{Status: entity.StatusWarning}, "http://dash.local")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, "reports/inventory-20261019-120000.pdf", key)

	require.NotNil(t, reports.got)
	assert.Len(t, reports.got.Items, 5)
	assert.Equal(t, 5, reports.got.Summary.Warning)
	assert.Equal(t, "http://dash.local", reports.got.DashboardURL)
	assert.Equal(t, now, reports.got.GeneratedAt)
}

func TestInventoryExport_FalloDeArchivoNoInterrumpe(t *testing.T) {
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, &fakeReports{}, &fakeArchive{err: errors.New("bucket")}, nil, clock, nil)

	pdf, key, err := uc.Export(context.Background(), dashboard.InventoryFilter{}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Empty(t, key)
}

func TestInventoryExport_ErrorDelGenerador(t *testing.T) {
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, &fakeReports{err: errors.New("maroto")}, nil, nil, clock, nil)

	_, _, err := uc.Export(context.Background(), dashboard.InventoryFilter{}, "")
	assert.Error(t, err)
}

func TestAddItem_Validaciones(t *testing.T) {
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, nil, nil, nil, clock, nil)
	valid := dto.AddItemRequest{Name: "Zinc Tablets", Category: "medications", Quantity: 10, Unit: "tablet", Location: "pharmacy"}

	cases := []struct {
		name   string
		mutate func(*dto.AddItemRequest)
	}{
		{"nombre corto", func(r *dto.AddItemRequest) { r.Name = "Z" }},
		{"categoria", func(r *dto.AddItemRequest) { r.Category = "food" }},
		{"cantidad negativa", func(r *dto.AddItemRequest) { r.Quantity = -1 }},
		{"unidad", func(r *dto.AddItemRequest) { r.Unit = "crate" }},
		{"ubicacion", func(r *dto.AddItemRequest) { r.Location = "garage" }},
		{"fecha mal formada", func(r *dto.AddItemRequest) { r.ExpiryDate = "19/10/2026" }},
		{"fecha vencida", func(r *dto.AddItemRequest) { r.ExpiryDate = "2026-10-18" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := uc.AddItem(context.Background(), "", "tester", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddItem_LocalRegistraActividad(t *testing.T) {
	activity := newActivity()
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), activity, nil, nil, nil, clock, nil)
	ctx := context.Background()

	res, err := uc.AddItem(ctx, "", "Chipo Mutasa", dto.AddItemRequest{
		Name: "Face Shields", Category: "ppe", Quantity: 40, Unit: "box", Location: "storage_a", ExpiryDate: "2026-10-19",
	})
	require.NoError(t, err)
	assert.Equal(t, "INV025", res.Item.ID)
	assert.Equal(t, "Storage Room A", res.Item.Location)
	assert.Equal(t, "2026-10-19", res.Item.ExpiryDate)
	assert.Nil(t, res.DrugID)

	recent, err := activity.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Restocked 40 boxes of Face Shields", recent[0].Description)
	assert.Equal(t, "CM", recent[0].Initials)
	assert.Equal(t, "just now", recent[0].Ago)
}

func TestAddItem_MedicamentoConCentroCreaLote(t *testing.T) {
	b, client := newBackend(t, map[string]reply{
		"POST /api/stock/drug":    {http.StatusCreated, map[string]any{"id": 7, "name": "Zinc Tablets"}},
		"POST /api/stock/batch/7": {http.StatusCreated, map[string]any{"id": 11, "batchNumber": "B-1"}},
	})
	uc := dashboard.NewInventoryUseCase(sample.NewCatalog(now), nil, nil, nil, client, clock, nil)
	facility := int64(3)

	res, err := uc.AddItem(context.Background(), "user-token", "tester", dto.AddItemRequest{
		Name: "Zinc Tablets", Category: "medications", Quantity: 100, Unit: "tablet", Location: "pharmacy", FacilityID: &facility,
	})
	require.NoError(t, err)
	require.NotNil(t, res.DrugID)
	require.NotNil(t, res.BatchID)
	assert.Equal(t, int64(7), *res.DrugID)
	assert.Equal(t, int64(11), *res.BatchID)

	assert.Equal(t, 2, b.count())
	last := b.last()
	assert.Equal(t, "facilityId=3", last.URL.RawQuery)
	assert.Equal(t, "Bearer user-token", last.Header.Get("Authorization"))
}

func TestAddItem_ErrorDelBackendNoAgregaLocal(t *testing.T) {
	_, client := newBackend(t, map[string]reply{
		"POST /api/stock/drug": {http.StatusForbidden, map[string]any{"message": "forbidden"}},
	})
	catalog := sample.NewCatalog(now)
	uc := dashboard.NewInventoryUseCase(catalog, nil, nil, nil, client, clock, nil)
	facility := int64(3)

	_, err := uc.AddItem(context.Background(), "t", "tester", dto.AddItemRequest{
		Name: "Zinc Tablets", Category: "medications", Quantity: 1, Unit: "tablet", Location: "pharmacy", FacilityID: &facility,
	})
	apiErr := apierror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	items, _ := catalog.Items(context.Background())
	assert.Len(t, items, 24)
}

func TestAddItem_FalloDelLoteRegistraMedicamentoHuerfano(t *testing.T) {
	_, client := newBackend(t, map[string]reply{
		"POST /api/stock/drug":    {http.StatusCreated, map[string]any{"id": 7, "name": "Zinc Tablets"}},
		"POST /api/stock/batch/7": {http.StatusBadRequest, map[string]any{"message": "invalid batch"}},
	})
	var out bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &out})
	catalog := sample.NewCatalog(now)
	uc := dashboard.NewInventoryUseCase(catalog, nil, nil, nil, client, clock, log)
	facility := int64(3)

	_, err := uc.AddItem(context.Background(), "t", "tester", dto.AddItemRequest{
		Name: "Zinc Tablets", Category: "medications", Quantity: 1, Unit: "tablet", Location: "pharmacy", FacilityID: &facility,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierror.As(err).Status)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 7, entry["drug_id"])
	assert.EqualValues(t, 3, entry["facility_id"])

	items, _ := catalog.Items(context.Background())
	assert.Len(t, items, 24)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestAlerts_PrimerasCuatro(t *testing.T) {
	uc := dashboard.NewAlertsUseCase(sample.NewCatalog(now), clock)

	res, err := uc.Alerts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 13, res.Total)
	assert.Equal(t, 6, res.Critical)
	assert.Equal(t, 7, res.Warning)
	assert.True(t, res.HasMore)
	require.Len(t, res.Alerts, 4)

	first := res.Alerts[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Malaria Test Kits", first.Item)
	assert.Equal(t, "critical", first.Severity)
	assert.Equal(t, "8 boxes remaining", first.Detail)
	assert.Equal(t, "Reorder", first.Action)
}

func TestAlerts_TodasConVencimientos(t *testing.T) {
	uc := dashboard.NewAlertsUseCase(sample.NewCatalog(now), clock)

	res, err := uc.Alerts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, res.Alerts, 13)
	assert.False(t, res.HasMore)

	insulin := res.Alerts[5]
	assert.Equal(t, "Insulin (Regular)", insulin.Item)
	assert.Equal(t, "expiry", insulin.Type)
	assert.Equal(t, "critical", insulin.Severity)
	assert.Equal(t, "Expires in 7 days", insulin.Detail)
	assert.Equal(t, "Review", insulin.Action)

	polio := res.Alerts[12]
	assert.Equal(t, "Polio Vaccine", polio.Item)
	assert.Equal(t, "warning", polio.Severity)
	assert.Equal(t, "Expires in 30 days", polio.Detail)
}

// ──────────────────────────────────────────────────────────────────────────────
// Provincias y mapa
// ──────────────────────────────────────────────────────────────────────────────

func TestRegions_TablaProvincial(t *testing.T) {
	uc := dashboard.NewRegionsUseCase(sample.NewCatalog(now))

	rows, err := uc.ProvinceTable(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	harare := rows[0]
	assert.Equal(t, "ZW-HA", harare.Code)
	assert.Equal(t, "warning", harare.Status)
	assert.Empty(t, harare.Districts)
	meds := harare.Categories["medications"]
	assert.Equal(t, 1250, meds.Total)
	assert.Equal(t, 105, meds.Critical)
	assert.Equal(t, 230, meds.Warning)
}

func TestRegions_ProvinciaPorCodigo(t *testing.T) {
	uc := dashboard.NewRegionsUseCase(sample.NewCatalog(now))
	ctx := context.Background()

	p, err := uc.Province(ctx, "zw-ma")
	require.NoError(t, err)
	assert.Equal(t, "Manicaland", p.Name)
	assert.Equal(t, "critical", p.Status)
	require.Len(t, p.Districts, 2)
	assert.Equal(t, "critical", p.Districts[0].Status)

	_, err = uc.Province(ctx, "ZW-XX")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegions_MapaYLeyenda(t *testing.T) {
	uc := dashboard.NewRegionsUseCase(sample.NewCatalog(now))

	m, err := uc.Map(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Regions, 10)
	for _, r := range m.Regions {
		assert.Equal(t, entity.StatusColor(entity.StockStatus(r.Status)), r.Fill)
		assert.Len(t, r.Districts, 2)
	}

	require.Len(t, m.Legend, 4)
	assert.Equal(t, "critical", m.Legend[0].Status)
	total := 0
	for _, l := range m.Legend {
		total += l.Count
	}
	assert.Equal(t, 10, total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actividad
// ──────────────────────────────────────────────────────────────────────────────

func TestActivity_Recientes(t *testing.T) {
	uc := newActivity()

	list, err := uc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, dashboard.DefaultActivityLimit)
	assert.Equal(t, "Dr. Tendai Moyo", list[0].Actor)
	assert.Equal(t, "TM", list[0].Initials)
	assert.Equal(t, "2h ago", list[0].Ago)
	assert.Equal(t, "Checked out 5 units of Surgical Sutures", list[0].Description)
	assert.Equal(t, "1d ago", list[3].Ago)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "TM", dashboard.Initials("Dr. Tendai Moyo"))
	assert.Equal(t, "RN", dashboard.Initials("rutendo ndlovu"))
	assert.Equal(t, "C", dashboard.Initials("Chipo"))
	assert.Equal(t, "ÉZ", dashboard.Initials("Émile Zola"))
	assert.Equal(t, "ÉÖ", dashboard.Initials("élodie öberg"))
	assert.Equal(t, "", dashboard.Initials(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel de medicamentos
// ──────────────────────────────────────────────────────────────────────────────

func drugsPage() map[string]any {
	return map[string]any{
		"totalElements": 42,
		"totalPages":    5,
		"number":        0,
		"size":          10,
		"content": []map[string]any{
			{"id": 1, "name": "Amoxicillin", "genericName": "amoxicillin trihydrate"},
			{"id": 2, "name": "Panadol", "genericName": "paracetamol"},
		},
	}
}

func TestDrugsPanel_PaginaYBusqueda(t *testing.T) {
	b, client := newBackend(t, map[string]reply{"GET /api/stock/drugs": {http.StatusOK, drugsPage()}})
	panel := dashboard.NewDrugsPanel(impilo.NewStockService(client).Drugs, nil)
	defer panel.Close()
	ctx := context.Background()

	res, err := panel.Page(ctx, 0, 0, "PARA")
	require.NoError(t, err)
	assert.False(t, res.Loading)
	assert.Nil(t, res.Error)
	assert.Equal(t, int64(42), res.TotalElements)
	assert.Equal(t, 5, res.TotalPages)
	require.Len(t, res.Drugs, 1)
	assert.Equal(t, "Panadol", res.Drugs[0].Name)
	assert.Equal(t, "page=0&size=10&sort=name%2Casc", b.last().URL.RawQuery)

	// Misma página: no vuelve a consultar.
	_, err = panel.Page(ctx, 0, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 1, b.count())

	_, err = panel.Page(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 2, b.count())
	assert.Equal(t, "page=1&size=20&sort=name%2Casc", b.last().URL.RawQuery)

	panel.Refresh(ctx, "")
	assert.Equal(t, 3, b.count())
	assert.Equal(t, "page=1&size=20&sort=name%2Casc", b.last().URL.RawQuery)
}

func TestDrugsPanel_PeticionesConcurrentesRecibenSuPagina(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		number, _ := strconv.Atoi(page)
		if number == 0 {
			started <- struct{}{}
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalElements": 20, "totalPages": 2, "number": number, "size": 10,
			"content": []map[string]any{{"id": 1, "name": "Droga página " + page}},
		})
	}))
	t.Cleanup(srv.Close)
	client := impilo.NewClient(impilo.Config{BaseURL: srv.URL + "/api"}, impilo.WithHTTPClient(srv.Client()))
	panel := dashboard.NewDrugsPanel(impilo.NewStockService(client).Drugs, nil)
	defer panel.Close()

	var (
		wg   sync.WaitGroup
		resA *dto.DrugsPanelDTO
		resB *dto.DrugsPanelDTO
		errA error
		errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resA, errA = panel.Page(context.Background(), 0, 10, "")
	}()
	<-started
	go func() {
		defer wg.Done()
		resB, errB = panel.Page(context.Background(), 1, 10, "")
	}()
	// B queda esperando mientras la página 0 sigue en curso.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.False(t, resA.Loading)
	assert.Equal(t, 0, resA.Page)
	require.Len(t, resA.Drugs, 1)
	assert.Equal(t, "Droga página 0", resA.Drugs[0].Name)

	assert.False(t, resB.Loading)
	assert.Equal(t, 1, resB.Page)
	require.Len(t, resB.Drugs, 1)
	assert.Equal(t, "Droga página 1", resB.Drugs[0].Name)
}

func TestDrugsPanel_TamanoInvalido(t *testing.T) {
	_, client := newBackend(t, nil)
	panel := dashboard.NewDrugsPanel(impilo.NewStockService(client).Drugs, nil)
	defer panel.Close()

	_, err := panel.Page(context.Background(), 0, 15, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = panel.Page(context.Background(), -1, 10, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDrugsPanel_ErrorDelBackend(t *testing.T) {
	_, client := newBackend(t, map[string]reply{"GET /api/stock/drugs": {http.StatusInternalServerError, map[string]any{"message": "db down"}}})
	panel := dashboard.NewDrugsPanel(impilo.NewStockService(client).Drugs, nil)
	defer panel.Close()

	res, err := panel.Page(context.Background(), 0, 10, "")
	require.NoError(t, err)
	assert.False(t, res.Loading)
	require.NotNil(t, res.Error)
	assert.Equal(t, "API request failed with status 500", res.Error.Message)
	assert.Empty(t, res.Drugs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockTransfer_Validaciones(t *testing.T) {
	_, client := newBackend(t, nil)
	uc := dashboard.NewStockUseCase(client, nil)

	cases := []dto.TransferRequest{
		{Quantity: 1, SourceFacilityID: 1, DestinationFacilityID: 2},
		{DrugID: 1, SourceFacilityID: 1, DestinationFacilityID: 2},
		{DrugID: 1, Quantity: 1, SourceFacilityID: 1},
		{DrugID: 1, Quantity: 1, SourceFacilityID: 2, DestinationFacilityID: 2},
	}
	for _, in := range cases {
		_, err := uc.Transfer(context.Background(), "t", "tester", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestStockTransfer_RegistraActividad(t *testing.T) {
	b, client := newBackend(t, map[string]reply{
		"POST /api/stock/transfer": {http.StatusOK, map[string]any{"id": 90, "quantity": 20, "transactionType": "TRANSFER", "drug": map[string]any{"id": 1, "name": "Amoxicillin"}}},
	})
	activity := newActivity()
	uc := dashboard.NewStockUseCase(client, activity)
	ctx := context.Background()

	tx, err := uc.Transfer(ctx, "user-token", "Rutendo Ndlovu", dto.TransferRequest{DrugID: 1, Quantity: 20, SourceFacilityID: 2, DestinationFacilityID: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTransfer, tx.TransactionType)
	assert.Equal(t, "Bearer user-token", b.last().Header.Get("Authorization"))

	recent, err := activity.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Transferred 20 units of Amoxicillin", recent[0].Description)
	assert.Equal(t, "facility #3", recent[0].Location)
}

func TestStockDispense_ErrorNoRegistraActividad(t *testing.T) {
	_, client := newBackend(t, map[string]reply{
		"POST /api/stock/dispense": {http.StatusBadRequest, map[string]any{"message": "insufficient stock"}},
	})
	activity := newActivity()
	uc := dashboard.NewStockUseCase(client, activity)
	ctx := context.Background()

	tx, err := uc.Dispense(ctx, "t", "tester", dto.DispenseRequest{DrugID: 1, Quantity: 500, FacilityID: 2})
	assert.Nil(t, tx)
	apiErr := apierror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, map[string]any{"message": "insufficient stock"}, apiErr.Data)

	recent, _ := activity.Recent(ctx, 1)
	assert.Equal(t, "Dr. Tendai Moyo", recent[0].Actor)
}

func TestStockAdjust(t *testing.T) {
	b, client := newBackend(t, map[string]reply{
		"PUT /api/stock/adjust/5": {http.StatusOK, map[string]any{"id": 5, "batchNumber": "B-77", "currentQuantity": 40, "drug": map[string]any{"name": "Insulin"}}},
	})
	activity := newActivity()
	uc := dashboard.NewStockUseCase(client, activity)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, "t", "tester", 5, dto.AdjustRequest{NewQuantity: 40})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reason es obligatorio")

	batch, err := uc.Adjust(ctx, "t", "tester", 5, dto.AdjustRequest{NewQuantity: 40, Reason: "conteo físico"})
	require.NoError(t, err)
	assert.Equal(t, 40, batch.CurrentQuantity)
	assert.Equal(t, "newQuantity=40&reason=conteo+f%C3%ADsico", b.last().URL.RawQuery)

	recent, _ := activity.Recent(ctx, 1)
	assert.Equal(t, "Adjusted stock of Insulin (batch B-77)", recent[0].Description)
}

func TestStockLecturas(t *testing.T) {
	b, client := newBackend(t, map[string]reply{
		"GET /api/stock/critical":              {http.StatusOK, []map[string]any{{"id": 1, "name": "Insulin"}}},
		"GET /api/stock/facility-stock-levels": {http.StatusOK, map[string]any{"Harare Central": map[string]int{"Insulin": 4}}},
		"GET /api/stock/history/1":             {http.StatusOK, []map[string]any{}},
	})
	uc := dashboard.NewStockUseCase(client, nil)
	ctx := context.Background()

	drugs, err := uc.Critical(ctx, "t", 0)
	require.NoError(t, err)
	require.Len(t, drugs, 1)
	assert.Equal(t, "threshold=10", b.last().URL.RawQuery)

	levels, err := uc.FacilityLevels(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 4, levels["Harare Central"]["Insulin"])

	_, err = uc.History(ctx, "t", 1, now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.History(ctx, "t", 1, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
}
