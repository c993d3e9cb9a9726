package entity

// CategoryStock conteo de ítems de una categoría por semáforo.
type CategoryStock struct {
	Total    int
	Critical int
	Warning  int
	Normal   int
}

// Add suma dos conteos.
func (c CategoryStock) Add(o CategoryStock) CategoryStock {
	return CategoryStock{
		Total:    c.Total + o.Total,
		Critical: c.Critical + o.Critical,
		Warning:  c.Warning + o.Warning,
		Normal:   c.Normal + o.Normal,
	}
}

// Status semáforo según el porcentaje de ítems críticos: más de 15% critical,
// más de 5% warning.
func (c CategoryStock) Status() StockStatus {
	if c.Total <= 0 {
		return StatusUnknown
	}
	pct := float64(c.Critical) * 100 / float64(c.Total)
	switch {
	case pct > 15:
		return StatusCritical
	case pct > 5:
		return StatusWarning
	}
	return StatusNormal
}

// WorstStatus el estado más grave de la lista (StatusUnknown si está vacía).
func WorstStatus(statuses ...StockStatus) StockStatus {
	worst := StatusUnknown
	for _, s := range statuses {
		if s.Severity() > worst.Severity() {
			worst = s
		}
	}
	return worst
}

// DistrictStock stock de un distrito por categoría.
type DistrictStock struct {
	ID         string
	Name       string
	Categories map[ItemCategory]CategoryStock
}

// Status el peor estado entre sus categorías.
func (d DistrictStock) Status() StockStatus {
	statuses := make([]StockStatus, 0, len(d.Categories))
	for _, cs := range d.Categories {
		statuses = append(statuses, cs.Status())
	}
	return WorstStatus(statuses...)
}

// ProvinceStock provincia con sus distritos. Code es el código ISO 3166-2 (ZW-HA)
// que usa el mapa nacional.
type ProvinceStock struct {
	ID        string
	Code      string
	Name      string
	ShortName string // etiqueta corta del gráfico ("Mash. East")
	Districts []DistrictStock
}

// Status el peor estado entre sus distritos.
func (p ProvinceStock) Status() StockStatus {
	statuses := make([]StockStatus, 0, len(p.Districts))
	for _, d := range p.Districts {
		statuses = append(statuses, d.Status())
	}
	return WorstStatus(statuses...)
}

// Totals suma por categoría de todos los distritos de la provincia.
func (p ProvinceStock) Totals() map[ItemCategory]CategoryStock {
	out := make(map[ItemCategory]CategoryStock, len(ChartCategories))
	for _, d := range p.Districts {
		for cat, cs := range d.Categories {
			out[cat] = out[cat].Add(cs)
		}
	}
	return out
}
