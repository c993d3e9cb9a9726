package dashboard

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
	"github.com/jhoicas/impilo-stock/pkg/format"
)

const (
	// VisibleAlerts alertas que se muestran sin "ver todas".
	VisibleAlerts = 4
	// ExpiryWindowDays días hacia adelante en que un vencimiento genera alerta.
	ExpiryWindowDays = 30
	// ExpiryCriticalDays a partir de aquí el vencimiento es crítico.
	ExpiryCriticalDays = 7
)

// AlertsUseCase alertas de stock bajo y vencimiento próximo, derivadas del inventario.
type AlertsUseCase struct {
	catalog repository.CatalogRepository
	now     Clock
}

func NewAlertsUseCase(catalog repository.CatalogRepository, now Clock) *AlertsUseCase {
	if now == nil {
		now = time.Now
	}
	return &AlertsUseCase{catalog: catalog, now: now}
}

// Alerts devuelve las primeras VisibleAlerts alertas, o todas si showAll.
// Los totales siempre cuentan el conjunto completo.
func (uc *AlertsUseCase) Alerts(ctx context.Context, showAll bool) (*dto.AlertListDTO, error) {
	alerts, err := uc.Derive(ctx)
	if err != nil {
		return nil, err
	}
	res := &dto.AlertListDTO{Total: len(alerts)}
	for _, a := range alerts {
		if a.Severity == entity.StatusCritical {
			res.Critical++
		} else {
			res.Warning++
		}
	}
	visible := alerts
	if !showAll && len(visible) > VisibleAlerts {
		visible = visible[:VisibleAlerts]
		res.HasMore = true
	}
	res.Alerts = make([]dto.StockAlertDTO, 0, len(visible))
	for _, a := range visible {
		res.Alerts = append(res.Alerts, toAlertDTO(a))
	}
	return res, nil
}

// Derive calcula las alertas ordenadas: críticas primero, luego stock bajo
// antes que vencimiento, y por menor cantidad o menos días.
func (uc *AlertsUseCase) Derive(ctx context.Context) ([]entity.StockAlert, error) {
	items, err := uc.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	var alerts []entity.StockAlert
	for _, it := range items {
		if st := it.Status(); st == entity.StatusCritical || st == entity.StatusWarning {
			alerts = append(alerts, entity.StockAlert{
				Type:      entity.AlertLowStock,
				Severity:  st,
				Item:      it.Name,
				Location:  it.Location,
				Province:  it.Province,
				District:  it.District,
				Remaining: it.Quantity,
				Unit:      it.Unit,
			})
		}
		if it.ExpiryDate == nil {
			continue
		}
		days := it.ExpiryDate.DaysUntil(now)
		if days < 0 || days > ExpiryWindowDays {
			continue
		}
		sev := entity.StatusWarning
		if days <= ExpiryCriticalDays {
			sev = entity.StatusCritical
		}
		alerts = append(alerts, entity.StockAlert{
			Type:          entity.AlertExpiry,
			Severity:      sev,
			Item:          it.Name,
			Location:      it.Location,
			Province:      it.Province,
			District:      it.District,
			ExpiresInDays: days,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Severity != b.Severity {
			return a.Severity.Severity() > b.Severity.Severity()
		}
		if a.Type != b.Type {
			return a.Type == entity.AlertLowStock
		}
		if a.Type == entity.AlertLowStock {
			return a.Remaining < b.Remaining
		}
		return a.ExpiresInDays < b.ExpiresInDays
	})
	for i := range alerts {
		alerts[i].ID = i + 1
	}
	return alerts, nil
}

func toAlertDTO(a entity.StockAlert) dto.StockAlertDTO {
	out := dto.StockAlertDTO{
		ID:       a.ID,
		Type:     string(a.Type),
		Severity: string(a.Severity),
		Item:     a.Item,
		Location: a.Location,
		Province: a.Province,
		District: a.District,
	}
	switch a.Type {
	case entity.AlertLowStock:
		out.Detail = format.Quantity(a.Remaining, a.Unit) + " remaining"
		out.Action = "Reorder"
	case entity.AlertExpiry:
		switch a.ExpiresInDays {
		case 0:
			out.Detail = "Expires today"
		case 1:
			out.Detail = "Expires in 1 day"
		default:
			out.Detail = "Expires in " + strconv.Itoa(a.ExpiresInDays) + " days"
		}
		out.Action = "Review"
	}
	return out
}
