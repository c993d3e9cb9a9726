// Package dashboard contiene los casos de uso de las vistas del dashboard:
// resumen, inventario, alertas, stock provincial, mapa, actividad, panel de
// medicamentos y operaciones de stock.
package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// InventoryFilter filtros de la tabla de inventario. Los vacíos no filtran.
type InventoryFilter struct {
	Category entity.ItemCategory
	Status   entity.StockStatus
	Province string
	Search   string // nombre, código o centro; sin distinguir mayúsculas
}

// InventoryReport datos del reporte PDF del inventario filtrado.
type InventoryReport struct {
	Filters      InventoryFilter
	Items        []entity.InventoryItem
	Summary      dto.InventorySummaryDTO
	GeneratedAt  time.Time
	DashboardURL string // opcional, se imprime como QR
}

// ReportGenerator genera el PDF del inventario.
type ReportGenerator interface {
	GenerateInventoryPDF(ctx context.Context, r InventoryReport) ([]byte, error)
}

// ReportArchive guarda copias de los reportes exportados. Puede ser nil.
type ReportArchive interface {
	// Put guarda el PDF y devuelve la clave del objeto.
	Put(ctx context.Context, name string, pdf []byte) (string, error)
}

// Clock fuente de la hora actual; se inyecta en tests.
type Clock func() time.Time
