package repository

import (
	"context"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// ActivityRepository registro de actividad reciente del dashboard.
type ActivityRepository interface {
	Append(ctx context.Context, a *entity.Activity) error
	// Recent devuelve las últimas limit entradas, la más nueva primero.
	Recent(ctx context.Context, limit int) ([]*entity.Activity, error)
}
