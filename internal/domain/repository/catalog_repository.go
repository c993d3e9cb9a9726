package repository

import (
	"context"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// CatalogRepository fuente de los datos del dashboard (inventario y stock por
// provincia). Hoy la implementa un catálogo de muestra en memoria.
type CatalogRepository interface {
	Items(ctx context.Context) ([]entity.InventoryItem, error)
	// AddItem guarda el ítem y lo devuelve con su código asignado.
	AddItem(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error)
	Provinces(ctx context.Context) ([]entity.ProvinceStock, error)
}
