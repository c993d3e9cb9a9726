package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
)

// DrugsHandler panel de medicamentos paginado.
type DrugsHandler struct {
	panel *dashboard.DrugsPanel
}

func NewDrugsHandler(panel *dashboard.DrugsPanel) *DrugsHandler {
	return &DrugsHandler{panel: panel}
}

// List godoc
// @Summary      Página del panel de medicamentos
// @Description  Una página nueva reemplaza la consulta anterior. search filtra la página cargada.
// @Tags         drugs
// @Produce      json
// @Security     Bearer
// @Param        page    query  int     false  "página (base 0)"
// @Param        size    query  int     false  "10|20|50|100"
// @Param        search  query  string  false  "nombre o nombre genérico"
// @Success      200  {object}  dto.DrugsPanelDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/drugs [get]
func (h *DrugsHandler) List(c *fiber.Ctx) error {
	out, err := h.panel.Page(c.UserContext(), c.QueryInt("page", 0), c.QueryInt("size", dashboard.DrugPageSizes[0]), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Volver a consultar la última página
// @Tags         drugs
// @Produce      json
// @Security     Bearer
// @Param        search  query  string  false  "nombre o nombre genérico"
// @Success      200  {object}  dto.DrugsPanelDTO
// @Router       /api/drugs/refresh [post]
func (h *DrugsHandler) Refresh(c *fiber.Ctx) error {
	return c.JSON(h.panel.Refresh(c.UserContext(), c.Query("search")))
}
