package sample_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/sample"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestCatalog_AddItemAsignaCodigo(t *testing.T) {
	c := sample.NewCatalog(now)
	ctx := context.Background()
	before, err := c.Items(ctx)
	require.NoError(t, err)

	added, err := c.AddItem(ctx, entity.InventoryItem{Name: "Zinc Tablets", Category: entity.CategoryMedications, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "INV025", added.ID)
	after, err := c.Items(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "INV025", after[len(after)-1].ID)
}

func TestCatalog_ProvinciasConDistritos(t *testing.T) {
	provinces, err := sample.NewCatalog(now).Provinces(context.Background())
	require.NoError(t, err)
	require.Len(t, provinces, 10)
	for _, p := range provinces {
		assert.NotEmpty(t, p.Code)
		assert.Len(t, p.Districts, 2, p.Name)
		for _, d := range p.Districts {
			for cat, cs := range d.Categories {
				assert.Equal(t, cs.Total, cs.Critical+cs.Warning+cs.Normal, "%s/%s", d.Name, cat)
			}
		}
	}
}

func TestActivityRepository_RecentOrdenaYLimita(t *testing.T) {
	r := sample.NewActivityRepository(now)
	ctx := context.Background()

	require.NoError(t, r.Append(ctx, &entity.Activity{Actor: "cli", Action: entity.ActionDispense, Item: "Paracetamol",
		Quantity: decimal.NewFromInt(3), OccurredAt: now}))

	recent, err := r.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "Paracetamol", recent[0].Item)
	assert.NotEmpty(t, recent[0].ID)
	assert.True(t, recent[1].OccurredAt.After(recent[2].OccurredAt))
}
