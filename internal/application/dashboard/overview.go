package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
)

// OverviewUseCase tarjetas de resumen y gráfico por provincia de la página principal.
type OverviewUseCase struct {
	catalog repository.CatalogRepository
}

func NewOverviewUseCase(catalog repository.CatalogRepository) *OverviewUseCase {
	return &OverviewUseCase{catalog: catalog}
}

func (uc *OverviewUseCase) Overview(ctx context.Context) (*dto.OverviewDTO, error) {
	items, err := uc.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}
	provinces, err := uc.catalog.Provinces(ctx)
	if err != nil {
		return nil, err
	}

	cards := dto.SummaryCardsDTO{TotalItems: len(items), Provinces: len(provinces), StockValue: decimal.Zero}
	facilities := make(map[string]struct{})
	for _, it := range items {
		switch it.Status() {
		case entity.StatusCritical:
			cards.Critical++
		case entity.StatusWarning:
			cards.Warning++
		}
		cards.StockValue = cards.StockValue.Add(it.Value())
		facilities[it.Location] = struct{}{}
	}
	cards.Facilities = len(facilities)

	chart := make([]dto.ChartPointDTO, 0, len(provinces))
	for _, p := range provinces {
		totals := p.Totals()
		name := p.ShortName
		if name == "" {
			name = p.Name
		}
		chart = append(chart, dto.ChartPointDTO{
			Name:        name,
			Medications: totals[entity.CategoryMedications].Total,
			Supplies:    totals[entity.CategorySupplies].Total,
			Equipment:   totals[entity.CategoryEquipment].Total,
			Vaccines:    totals[entity.CategoryVaccines].Total,
		})
	}
	return &dto.OverviewDTO{Cards: cards, Chart: chart}, nil
}
