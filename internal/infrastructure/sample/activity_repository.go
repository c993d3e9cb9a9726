package sample

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

// maxActivities tope de entradas retenidas en memoria.
const maxActivities = 500

// ActivityRepository registro de actividad en memoria, usado cuando no hay
// PostgreSQL configurado.
type ActivityRepository struct {
	mu   sync.RWMutex
	list []*entity.Activity
}

// NewActivityRepository crea el registro con actividad de muestra relativa a now.
func NewActivityRepository(now time.Time) *ActivityRepository {
	return &ActivityRepository{list: seedActivities(now)}
}

func (r *ActivityRepository) Append(_ context.Context, a *entity.Activity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	cp := *a
	r.mu.Lock()
	r.list = append(r.list, &cp)
	if len(r.list) > maxActivities {
		r.list = r.list[len(r.list)-maxActivities:]
	}
	r.mu.Unlock()
	return nil
}

func (r *ActivityRepository) Recent(_ context.Context, limit int) ([]*entity.Activity, error) {
	r.mu.RLock()
	out := make([]*entity.Activity, 0, len(r.list))
	for _, a := range r.list {
		cp := *a
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func seedActivities(now time.Time) []*entity.Activity {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	return []*entity.Activity{
		{ID: uuid.NewString(), Actor: "Dr. Tendai Moyo", Action: entity.ActionCheckout, Item: "Surgical Sutures", Quantity: decimal.NewFromInt(5), Unit: "unit",
			Location: "Harare Central Hospital", Province: "Harare", OccurredAt: ago(2 * time.Hour)},
		{ID: uuid.NewString(), Actor: "Rutendo Ndlovu", Action: entity.ActionRestock, Item: "Nitrile Gloves (S)", Quantity: decimal.NewFromInt(20), Unit: "box",
			Location: "Bulawayo Central Hospital", Province: "Bulawayo", OccurredAt: ago(3 * time.Hour)},
		{ID: uuid.NewString(), Actor: "Dr. Farai Khumalo", Action: entity.ActionCheckout, Item: "Blood Pressure Monitor", Quantity: decimal.NewFromInt(2), Unit: "unit",
			Location: "Mutare Provincial Hospital", Province: "Manicaland", OccurredAt: ago(5 * time.Hour)},
		{ID: uuid.NewString(), Actor: "Chipo Mutasa", Action: entity.ActionUpdate, Item: "Insulin (Regular)", Note: "fecha de vencimiento actualizada",
			Location: "Gweru Provincial Hospital", Province: "Midlands", OccurredAt: ago(26 * time.Hour)},
		{ID: uuid.NewString(), Actor: "Tatenda Sibanda", Action: entity.ActionRestock, Item: "Malaria Test Kits", Quantity: decimal.NewFromInt(50), Unit: "box",
			Location: "Hwange District Hospital", Province: "Matabeleland North", OccurredAt: ago(30 * time.Hour)},
	}
}
