package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// ReportKeyHeader header con la clave del reporte archivado, si se archivó.
const ReportKeyHeader = "X-Report-Key"

// InventoryHandler tabla de inventario, exportación PDF y alta de ítems.
type InventoryHandler struct {
	uc           *dashboard.InventoryUseCase
	dashboardURL string
}

// NewInventoryHandler construye el handler. dashboardURL se imprime como QR en el PDF.
func NewInventoryHandler(uc *dashboard.InventoryUseCase, dashboardURL string) *InventoryHandler {
	return &InventoryHandler{uc: uc, dashboardURL: dashboardURL}
}

// parseFilter lee category, status, province y search de la query.
func parseFilter(c *fiber.Ctx) (dashboard.InventoryFilter, string) {
	f := dashboard.InventoryFilter{
		Province: strings.TrimSpace(c.Query("province")),
		Search:   c.Query("search"),
	}
	if v := strings.ToLower(strings.TrimSpace(c.Query("category"))); v != "" && v != "all" {
		f.Category = entity.ItemCategory(v)
		if !f.Category.Valid() {
			return f, "category inválida: " + v
		}
	}
	if v := strings.ToLower(strings.TrimSpace(c.Query("status"))); v != "" && v != "all" {
		f.Status = entity.StockStatus(v)
		if !f.Status.Valid() {
			return f, "status inválido: " + v
		}
	}
	return f, ""
}

// List godoc
// @Summary      Inventario paginado y filtrado
// @Tags         inventory
// @Produce      json
// @Param        category  query  string  false  "medications|supplies|equipment|vaccines|disposables|ppe"
// @Param        status    query  string  false  "critical|warning|normal|excess"
// @Param        province  query  string  false  "provincia"
// @Param        search    query  string  false  "nombre, código o centro"
// @Param        page      query  int     false  "página (base 1)"
// @Param        per_page  query  int     false  "ítems por página (máx. 100)"
// @Success      200  {object}  dto.InventoryListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	f, msg := parseFilter(c)
	if msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	out, err := h.uc.List(c.UserContext(), f, c.QueryInt("page", 1), c.QueryInt("per_page", dashboard.DefaultPerPage))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el inventario filtrado a PDF
// @Tags         inventory
// @Produce      application/pdf
// @Param        category  query  string  false  "categoría"
// @Param        status    query  string  false  "estado"
// @Param        province  query  string  false  "provincia"
// @Param        search    query  string  false  "búsqueda"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	f, msg := parseFilter(c)
	if msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	pdf, key, err := h.uc.Export(c.UserContext(), f, h.dashboardURL)
	if err != nil {
		return writeError(c, err)
	}
	if key != "" {
		c.Set(ReportKeyHeader, key)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-report.pdf"`)
	return c.Send(pdf)
}

// AddItem godoc
// @Summary      Agregar ítem al inventario
// @Description  Con facility_id y categoría medications crea también el medicamento y su lote en el backend.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.AddItemRequest  true  "ítem"
// @Success      201   {object}  dto.AddItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AddItem(c.UserContext(), GetToken(c), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
