package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// historyWindow rango por defecto del historial de movimientos.
const historyWindow = 30 * 24 * time.Hour

// StockHandler operaciones de stock contra el backend con el token del usuario.
type StockHandler struct {
	uc  *dashboard.StockUseCase
	now dashboard.Clock
}

// NewStockHandler construye el handler. now nil usa time.Now.
func NewStockHandler(uc *dashboard.StockUseCase, now dashboard.Clock) *StockHandler {
	if now == nil {
		now = time.Now
	}
	return &StockHandler{uc: uc, now: now}
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// Transfer godoc
// @Summary      Transferir stock entre centros
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.TransferRequest  true  "medicamento, cantidad, origen y destino"
// @Success      201   {object}  entity.StockTransaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	tx, err := h.uc.Transfer(c.UserContext(), GetToken(c), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// Dispense godoc
// @Summary      Dispensar stock de un centro
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.DispenseRequest  true  "medicamento, cantidad y centro"
// @Success      201   {object}  entity.StockTransaction
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/dispense [post]
func (h *StockHandler) Dispense(c *fiber.Ctx) error {
	var in dto.DispenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	tx, err := h.uc.Dispense(c.UserContext(), GetToken(c), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// Adjust godoc
// @Summary      Ajustar la cantidad de un lote
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  int                true  "id del lote"
// @Param        body  body  dto.AdjustRequest  true  "nueva cantidad y motivo"
// @Success      200   {object}  entity.StockBatch
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/batches/{id} [put]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id de lote inválido")
	}
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	b, err := h.uc.Adjust(c.UserContext(), GetToken(c), GetUsername(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(b)
}

// Request godoc
// @Summary      Solicitar reposición
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  entity.StockRequest  true  "drugId, requestingFacilityId, quantity"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/requests [post]
func (h *StockHandler) Request(c *fiber.Ctx) error {
	var in entity.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Request(c.UserContext(), GetToken(c), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

// LowStock godoc
// @Summary      Medicamentos con stock bajo
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  entity.Drug
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Critical godoc
// @Summary      Medicamentos bajo el umbral crítico
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Param        threshold  query  int  false  "umbral (por defecto 10)"
// @Success      200  {array}  entity.Drug
// @Router       /api/stock/critical [get]
func (h *StockHandler) Critical(c *fiber.Ctx) error {
	out, err := h.uc.Critical(c.UserContext(), GetToken(c), c.QueryInt("threshold", dashboard.DefaultCriticalThreshold))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un medicamento
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Param        drugId  path   int     true   "id del medicamento"
// @Param        start   query  string  false  "YYYY-MM-DD o RFC3339 (por defecto hace 30 días)"
// @Param        end     query  string  false  "YYYY-MM-DD o RFC3339 (por defecto ahora)"
// @Success      200  {array}   entity.StockTransaction
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/history/{drugId} [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	drugID, ok := paramID(c, "drugId")
	if !ok {
		return badRequest(c, "VALIDATION", "drugId inválido")
	}
	end := h.now()
	start := end.Add(-historyWindow)
	var err error
	if v := c.Query("start"); v != "" {
		if start, err = parseTime(v); err != nil {
			return badRequest(c, "VALIDATION", "start inválido: "+v)
		}
	}
	if v := c.Query("end"); v != "" {
		if end, err = parseTime(v); err != nil {
			return badRequest(c, "VALIDATION", "end inválido: "+v)
		}
	}
	out, err := h.uc.History(c.UserContext(), GetToken(c), drugID, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// FacilityBatches godoc
// @Summary      Lotes de un centro
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Param        id  path  int  true  "id del centro"
// @Success      200  {array}  entity.StockBatch
// @Router       /api/stock/facilities/{id}/batches [get]
func (h *StockHandler) FacilityBatches(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id de centro inválido")
	}
	out, err := h.uc.FacilityBatches(c.UserContext(), GetToken(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Levels godoc
// @Summary      Niveles de stock por centro
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  map[string]map[string]int
// @Router       /api/stock/levels [get]
func (h *StockHandler) Levels(c *fiber.Ctx) error {
	out, err := h.uc.FacilityLevels(c.UserContext(), GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de stock del backend
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Stock por centro ─────────────────────────────────────────────────────────

// ListFacilityStock godoc
// @Summary      Registros de stock por centro
// @Tags         facility-stock
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  entity.FacilityStock
// @Router       /api/facility-stock [get]
func (h *StockHandler) ListFacilityStock(c *fiber.Ctx) error {
	out, err := h.uc.FacilityStock(c.UserContext(), GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetFacilityStock godoc
// @Summary      Registro de stock por id
// @Tags         facility-stock
// @Produce      json
// @Security     Bearer
// @Param        id  path  int  true  "id del registro"
// @Success      200  {object}  entity.FacilityStock
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facility-stock/{id} [get]
func (h *StockHandler) GetFacilityStock(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.FacilityStockByID(c.UserContext(), GetToken(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveFacilityStock godoc
// @Summary      Crear o actualizar un registro de stock por centro
// @Tags         facility-stock
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  entity.FacilityStock  true  "registro"
// @Success      200   {object}  entity.FacilityStock
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/facility-stock [post]
func (h *StockHandler) SaveFacilityStock(c *fiber.Ctx) error {
	var in entity.FacilityStock
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SaveFacilityStock(c.UserContext(), GetToken(c), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteFacilityStock godoc
// @Summary      Eliminar un registro de stock por centro (ADMIN)
// @Tags         facility-stock
// @Security     Bearer
// @Param        id  path  int  true  "id del registro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/facility-stock/{id} [delete]
func (h *StockHandler) DeleteFacilityStock(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.DeleteFacilityStock(c.UserContext(), GetToken(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
