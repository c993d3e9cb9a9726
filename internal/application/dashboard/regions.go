package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
)

// legendOrder orden de la leyenda del mapa.
var legendOrder = []struct {
	status entity.StockStatus
	label  string
}{
	{entity.StatusCritical, "Critical"},
	{entity.StatusWarning, "Warning"},
	{entity.StatusNormal, "Normal"},
	{entity.StatusExcess, "Excess"},
}

// RegionsUseCase tabla de stock por provincia/distrito y mapa nacional.
type RegionsUseCase struct {
	catalog repository.CatalogRepository
}

func NewRegionsUseCase(catalog repository.CatalogRepository) *RegionsUseCase {
	return &RegionsUseCase{catalog: catalog}
}

// ProvinceTable filas de provincia; withDistricts incluye las filas de distrito.
func (uc *RegionsUseCase) ProvinceTable(ctx context.Context, withDistricts bool) ([]dto.ProvinceStockDTO, error) {
	provinces, err := uc.catalog.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProvinceStockDTO, 0, len(provinces))
	for _, p := range provinces {
		out = append(out, toProvinceDTO(p, withDistricts))
	}
	return out, nil
}

// Province busca por código ISO (ZW-HA), id o nombre, sin distinguir mayúsculas.
func (uc *RegionsUseCase) Province(ctx context.Context, key string) (*dto.ProvinceStockDTO, error) {
	provinces, err := uc.catalog.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range provinces {
		if strings.EqualFold(p.Code, key) || strings.EqualFold(p.ID, key) || strings.EqualFold(p.Name, key) {
			res := toProvinceDTO(p, true)
			return &res, nil
		}
	}
	return nil, fmt.Errorf("%w: provincia %q", domain.ErrNotFound, key)
}

// Map regiones del mapa nacional con su color y la leyenda con conteos.
func (uc *RegionsUseCase) Map(ctx context.Context) (*dto.NationalMapDTO, error) {
	provinces, err := uc.catalog.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[entity.StockStatus]int, len(legendOrder))
	res := &dto.NationalMapDTO{Regions: make([]dto.MapRegionDTO, 0, len(provinces))}
	for _, p := range provinces {
		st := p.Status()
		counts[st]++
		region := dto.MapRegionDTO{
			Code:      p.Code,
			Name:      p.Name,
			Status:    string(st),
			Fill:      entity.StatusColor(st),
			Districts: make([]dto.MapDistrictDTO, 0, len(p.Districts)),
		}
		for _, d := range p.Districts {
			region.Districts = append(region.Districts, dto.MapDistrictDTO{ID: d.ID, Name: d.Name, Status: string(d.Status())})
		}
		res.Regions = append(res.Regions, region)
	}
	for _, l := range legendOrder {
		res.Legend = append(res.Legend, dto.LegendEntryDTO{
			Status: string(l.status),
			Label:  l.label,
			Fill:   entity.StatusColor(l.status),
			Count:  counts[l.status],
		})
	}
	return res, nil
}

func toProvinceDTO(p entity.ProvinceStock, withDistricts bool) dto.ProvinceStockDTO {
	out := dto.ProvinceStockDTO{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		Status:     string(p.Status()),
		Categories: categoriesDTO(p.Totals()),
	}
	if withDistricts {
		out.Districts = make([]dto.DistrictStockDTO, 0, len(p.Districts))
		for _, d := range p.Districts {
			out.Districts = append(out.Districts, dto.DistrictStockDTO{
				ID:         d.ID,
				Name:       d.Name,
				Status:     string(d.Status()),
				Categories: categoriesDTO(d.Categories),
			})
		}
	}
	return out
}

func categoriesDTO(m map[entity.ItemCategory]entity.CategoryStock) map[string]dto.CategoryStockDTO {
	out := make(map[string]dto.CategoryStockDTO, len(entity.ChartCategories))
	for _, cat := range entity.ChartCategories {
		cs := m[cat]
		out[string(cat)] = dto.CategoryStockDTO{
			Total:    cs.Total,
			Critical: cs.Critical,
			Warning:  cs.Warning,
			Normal:   cs.Normal,
			Status:   string(cs.Status()),
		}
	}
	return out
}
