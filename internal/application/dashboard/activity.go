package dashboard

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
	"github.com/jhoicas/impilo-stock/pkg/format"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

// DefaultActivityLimit entradas que muestra el panel de actividad reciente.
const DefaultActivityLimit = 5

// ActivityUseCase panel de actividad reciente.
type ActivityUseCase struct {
	repo repository.ActivityRepository
	now  Clock
	log  *logger.Logger
}

func NewActivityUseCase(repo repository.ActivityRepository, now Clock, log *logger.Logger) *ActivityUseCase {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityUseCase{repo: repo, now: now, log: log}
}

// Recent últimas limit entradas, la más nueva primero.
func (uc *ActivityUseCase) Recent(ctx context.Context, limit int) ([]dto.ActivityDTO, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	list, err := uc.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.ActivityDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ActivityDTO{
			ID:          a.ID,
			Actor:       a.Actor,
			Initials:    Initials(a.Actor),
			Action:      string(a.Action),
			Description: Describe(a),
			Location:    a.Location,
			Ago:         format.Ago(a.OccurredAt, now),
			OccurredAt:  a.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// Record registra una entrada. Un fallo del repositorio no interrumpe la
// operación que la origina; solo se registra en el log.
func (uc *ActivityUseCase) Record(ctx context.Context, a *entity.Activity) {
	if a.OccurredAt.IsZero() {
		a.OccurredAt = uc.now().UTC()
	}
	if err := uc.repo.Append(ctx, a); err != nil {
		uc.log.Warn().Err(err).Str("action", string(a.Action)).Msg("no se pudo registrar la actividad")
	}
}

// Initials iniciales del actor para el avatar, sin títulos ("Dr. Tendai Moyo" -> "TM").
func Initials(name string) string {
	out := make([]rune, 0, 2)
	for _, w := range strings.Fields(name) {
		if strings.HasSuffix(w, ".") {
			continue
		}
		out = append(out, unicode.ToUpper([]rune(w)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// Describe texto de la entrada ("Checked out 5 units of Surgical Sutures").
func Describe(a *entity.Activity) string {
	qty := ""
	if !a.Quantity.IsZero() {
		n := int(a.Quantity.IntPart())
		qty = format.Quantity(n, a.Unit) + " of "
	}
	switch a.Action {
	case entity.ActionCheckout:
		return "Checked out " + qty + a.Item
	case entity.ActionRestock:
		return "Restocked " + qty + a.Item
	case entity.ActionTransfer:
		return "Transferred " + qty + a.Item
	case entity.ActionDispense:
		return "Dispensed " + qty + a.Item
	case entity.ActionAdjustment:
		return "Adjusted stock of " + a.Item
	case entity.ActionRequest:
		return "Requested " + qty + a.Item
	}
	if a.Note != "" {
		return "Updated " + a.Item + ": " + a.Note
	}
	return "Updated " + a.Item
}
