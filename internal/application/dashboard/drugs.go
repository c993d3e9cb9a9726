package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/application/fetch"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/apierror"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

// DrugPageSizes tamaños de página que ofrece el panel.
var DrugPageSizes = []int{10, 20, 50, 100}

const drugsSort = "name,asc"

type pageableKey struct{}

// DrugsPanel panel de medicamentos respaldado por GET /stock/drugs. Hay una sola
// consulta compartida; las peticiones se atienden de a una para que cada
// llamador reciba la página que pidió.
type DrugsPanel struct {
	query *fetch.Query[*entity.Page[entity.Drug]]

	serial sync.Mutex // Watch/Refetch + snapshot

	mu   sync.Mutex
	last entity.Pageable
}

// NewDrugsPanel crea el panel sobre drugs (normalmente con el token de servicio).
func NewDrugsPanel(drugs *impilo.DrugService, log *logger.Logger) *DrugsPanel {
	if log == nil {
		log = logger.Nop()
	}
	p := &DrugsPanel{last: entity.Pageable{Size: DrugPageSizes[0], Sort: []string{drugsSort}}}
	p.query = fetch.New(func(ctx context.Context) (*entity.Page[entity.Drug], error) {
		pg, ok := ctx.Value(pageableKey{}).(entity.Pageable)
		if !ok {
			pg = p.lastPageable()
		}
		return drugs.GetAll(ctx, pg)
	}, fetch.Options[*entity.Page[entity.Drug]]{
		OnError: func(e *apierror.Error) {
			log.Warn().Int("status", e.Status).Str("error", e.Message).Msg("panel de medicamentos: error al consultar")
		},
	})
	return p
}

func (p *DrugsPanel) lastPageable() entity.Pageable {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Page consulta la página (base 0) si cambió respecto de la anterior y filtra
// por search sobre nombre y nombre genérico de la página cargada.
func (p *DrugsPanel) Page(ctx context.Context, page, size int, search string) (*dto.DrugsPanelDTO, error) {
	if size == 0 {
		size = DrugPageSizes[0]
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: page no puede ser negativa", domain.ErrInvalidInput)
	}
	if !validPageSize(size) {
		return nil, fmt.Errorf("%w: size debe ser uno de %v", domain.ErrInvalidInput, DrugPageSizes)
	}
	pg := entity.Pageable{Page: page, Size: size, Sort: []string{drugsSort}}

	p.serial.Lock()
	defer p.serial.Unlock()
	p.mu.Lock()
	p.last = pg
	p.mu.Unlock()

	<-p.query.Watch(context.WithValue(ctx, pageableKey{}, pg), page, size)
	return p.snapshot(pg, search), nil
}

// Refresh vuelve a consultar la última página pedida.
func (p *DrugsPanel) Refresh(ctx context.Context, search string) *dto.DrugsPanelDTO {
	p.serial.Lock()
	defer p.serial.Unlock()
	pg := p.lastPageable()
	_, _ = p.query.Refetch(context.WithValue(ctx, pageableKey{}, pg))
	return p.snapshot(pg, search)
}

// Close descarta resultados pendientes; se llama al apagar el servidor.
func (p *DrugsPanel) Close() { p.query.Close() }

// snapshot arma la respuesta para pg. Si los datos guardados son de otra
// página (por ejemplo tras un error) no se devuelven medicamentos.
func (p *DrugsPanel) snapshot(pg entity.Pageable, search string) *dto.DrugsPanelDTO {
	st := p.query.State()
	res := &dto.DrugsPanelDTO{
		Drugs:   []entity.Drug{},
		Page:    pg.Page,
		Size:    pg.Size,
		Search:  search,
		Loading: st.Loading,
	}
	if st.Err != nil {
		res.Error = &dto.ErrorResponse{Code: "API_ERROR", Message: st.Err.Message, Details: st.Err.Data}
	}
	if !st.HasData || st.Data == nil || st.Data.Number != pg.Page || st.Data.Size != pg.Size {
		return res
	}
	data := st.Data
	res.Page = data.Number
	res.Size = data.Size
	res.TotalElements = data.TotalElements
	res.TotalPages = data.TotalPages
	res.Drugs = FilterDrugs(data.Content, search)
	return res
}

// FilterDrugs filtra por nombre o nombre genérico, sin distinguir mayúsculas.
func FilterDrugs(drugs []entity.Drug, search string) []entity.Drug {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]entity.Drug, 0, len(drugs))
	for _, d := range drugs {
		if q == "" ||
			strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.GenericName), q) {
			out = append(out, d)
		}
	}
	return out
}

func validPageSize(size int) bool {
	for _, s := range DrugPageSizes {
		if s == size {
			return true
		}
	}
	return false
}
