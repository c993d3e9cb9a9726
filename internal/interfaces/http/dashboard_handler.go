package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
)

// DashboardHandler vistas de resumen: tarjetas, alertas, provincias, mapa y actividad.
type DashboardHandler struct {
	overview *dashboard.OverviewUseCase
	alerts   *dashboard.AlertsUseCase
	regions  *dashboard.RegionsUseCase
	activity *dashboard.ActivityUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(
	overview *dashboard.OverviewUseCase,
	alerts *dashboard.AlertsUseCase,
	regions *dashboard.RegionsUseCase,
	activity *dashboard.ActivityUseCase,
) *DashboardHandler {
	return &DashboardHandler{overview: overview, alerts: alerts, regions: regions, activity: activity}
}

// Overview godoc
// @Summary      Tarjetas de resumen y gráfico por provincia
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.overview.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo y vencimientos
// @Tags         dashboard
// @Produce      json
// @Param        all  query  bool  false  "todas las alertas (por defecto las 4 primeras)"
// @Success      200  {object}  dto.AlertListDTO
// @Router       /api/dashboard/alerts [get]
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.alerts.Alerts(c.UserContext(), c.QueryBool("all", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Provinces godoc
// @Summary      Stock por provincia y categoría
// @Tags         dashboard
// @Produce      json
// @Param        districts  query  bool  false  "incluir distritos"
// @Success      200  {array}   dto.ProvinceStockDTO
// @Router       /api/dashboard/provinces [get]
func (h *DashboardHandler) Provinces(c *fiber.Ctx) error {
	out, err := h.regions.ProvinceTable(c.UserContext(), c.QueryBool("districts", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Province godoc
// @Summary      Detalle de una provincia con sus distritos
// @Tags         dashboard
// @Produce      json
// @Param        code  path  string  true  "código, id o nombre de la provincia"
// @Success      200   {object}  dto.ProvinceStockDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dashboard/provinces/{code} [get]
func (h *DashboardHandler) Province(c *fiber.Ctx) error {
	out, err := h.regions.Province(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Map godoc
// @Summary      Mapa nacional con semáforo por provincia
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.NationalMapDTO
// @Router       /api/dashboard/map [get]
func (h *DashboardHandler) Map(c *fiber.Ctx) error {
	out, err := h.regions.Map(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Actividad reciente
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "cantidad (por defecto 5)"
// @Success      200    {array}   dto.ActivityDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/dashboard/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", dashboard.DefaultActivityLimit)
	if limit <= 0 {
		return badRequest(c, "VALIDATION", "limit debe ser mayor a 0")
	}
	out, err := h.activity.Recent(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
