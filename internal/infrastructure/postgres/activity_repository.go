package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

const activitySchema = `
	CREATE TABLE IF NOT EXISTS activities (
		id          UUID PRIMARY KEY,
		actor       TEXT NOT NULL,
		action      TEXT NOT NULL,
		item        TEXT NOT NULL,
		quantity    NUMERIC(14,3) NOT NULL DEFAULT 0,
		unit        TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		province    TEXT NOT NULL DEFAULT '',
		note        TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS activities_occurred_at_idx ON activities (occurred_at DESC);`

// ActivityRepo registro de actividad sobre PostgreSQL.
type ActivityRepo struct {
	pool *pgxpool.Pool
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *ActivityRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, activitySchema); err != nil {
		return fmt.Errorf("crear tabla activities: %w", err)
	}
	return nil
}

// Append persiste una entrada; completa ID y fecha si faltan.
func (r *ActivityRepo) Append(ctx context.Context, a *entity.Activity) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		id = uuid.New()
		a.ID = id.String()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	query := `
		INSERT INTO activities (id, actor, action, item, quantity, unit, location, province, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.pool.Exec(ctx, query,
		[16]byte(id), a.Actor, string(a.Action), a.Item, a.Quantity, a.Unit,
		a.Location, a.Province, a.Note, a.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent últimas limit entradas, la más nueva primero.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id::text, actor, action, item, quantity, unit, location, province, note, occurred_at
		FROM activities ORDER BY occurred_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		var action string
		if err := rows.Scan(&a.ID, &a.Actor, &action, &a.Item, &a.Quantity, &a.Unit,
			&a.Location, &a.Province, &a.Note, &a.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Action = entity.ActivityAction(action)
		list = append(list, &a)
	}
	return list, rows.Err()
}
