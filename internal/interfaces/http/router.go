package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/auth"
	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
)

// RoleAdmin rol requerido para operaciones destructivas.
const RoleAdmin = "ADMIN"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OverviewUC   *dashboard.OverviewUseCase
	AlertsUC     *dashboard.AlertsUseCase
	RegionsUC    *dashboard.RegionsUseCase
	ActivityUC   *dashboard.ActivityUseCase
	InventoryUC  *dashboard.InventoryUseCase
	StockUC      *dashboard.StockUseCase
	DrugsPanel   *dashboard.DrugsPanel
	DashboardURL string
	Now          dashboard.Clock
}

// Router registra las rutas de la API.
// Las vistas del dashboard sobre datos de muestra son públicas; lo que toca el
// backend Impilo exige Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Now)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/session", requireAuth, authHandler.Session)
	authGroup.Get("/validate", requireAuth, authHandler.Validate)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	// Dashboard (público)
	dash := api.Group("/dashboard")
	dashHandler := NewDashboardHandler(deps.OverviewUC, deps.AlertsUC, deps.RegionsUC, deps.ActivityUC)
	dash.Get("/overview", dashHandler.Overview)
	dash.Get("/alerts", dashHandler.Alerts)
	dash.Get("/provinces", dashHandler.Provinces)
	dash.Get("/provinces/:code", dashHandler.Province)
	dash.Get("/map", dashHandler.Map)
	dash.Get("/activity", dashHandler.Activity)

	// Inventory: lectura pública, alta protegida
	inv := api.Group("/inventory")
	invHandler := NewInventoryHandler(deps.InventoryUC, deps.DashboardURL)
	inv.Get("/", invHandler.List)
	inv.Get("/export", invHandler.Export)
	inv.Post("/", requireAuth, invHandler.AddItem)

	// Drugs panel (protegido)
	if deps.DrugsPanel != nil {
		drugs := api.Group("/drugs", requireAuth)
		drugsHandler := NewDrugsHandler(deps.DrugsPanel)
		drugs.Get("/", drugsHandler.List)
		drugs.Post("/refresh", drugsHandler.Refresh)
	}

	// Stock (protegido)
	stockHandler := NewStockHandler(deps.StockUC, deps.Now)
	stock := api.Group("/stock", requireAuth)
	stock.Post("/transfer", stockHandler.Transfer)
	stock.Post("/dispense", stockHandler.Dispense)
	stock.Put("/batches/:id", stockHandler.Adjust)
	stock.Post("/requests", stockHandler.Request)
	stock.Get("/low", stockHandler.LowStock)
	stock.Get("/critical", stockHandler.Critical)
	stock.Get("/history/:drugId", stockHandler.History)
	stock.Get("/facilities/:id/batches", stockHandler.FacilityBatches)
	stock.Get("/levels", stockHandler.Levels)
	stock.Get("/report", stockHandler.Report)

	// Facility stock (protegido; borrar requiere ADMIN)
	fs := api.Group("/facility-stock", requireAuth)
	fs.Get("/", stockHandler.ListFacilityStock)
	fs.Get("/:id", stockHandler.GetFacilityStock)
	fs.Post("/", stockHandler.SaveFacilityStock)
	fs.Delete("/:id", RequireRole(RoleAdmin), stockHandler.DeleteFacilityStock)
}
