package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/impilo-stock/internal/application/auth"
	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	infrapdf "github.com/jhoicas/impilo-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/sample"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/storage"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/impilo-stock/internal/interfaces/http"
	"github.com/jhoicas/impilo-stock/pkg/config"
	"github.com/jhoicas/impilo-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando dashboard")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	clientMetrics, err := impilo.NewMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas del cliente")
	}
	httpMetrics, err := httpRouter.NewMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas HTTP")
	}

	// Cliente del backend. El token de servicio (opcional) lo usa el panel de
	// medicamentos; las operaciones de usuario van con el token de cada petición.
	client := impilo.NewClient(impilo.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Token:   cfg.API.Token,
	}, impilo.WithLogger(log.Component("impilo-client").Zerolog()), impilo.WithMetrics(clientMetrics))
	services := impilo.NewServices(client, nil)
	if cfg.API.Token == "" {
		log.Warn().Msg("IMPILO_API_TOKEN vacío: el panel de medicamentos dependerá de endpoints públicos")
	}

	// Registro de actividad: PostgreSQL si está configurado, si no en memoria.
	var activityRepo repository.ActivityRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewActivityRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear esquema de actividad")
		}
		activityRepo = repo
	} else {
		log.Info().Msg("sin base de datos: actividad en memoria")
		activityRepo = sample.NewActivityRepository(time.Now())
	}

	// Archivo de reportes (opcional).
	var archive dashboard.ReportArchive
	if cfg.MinIO.Enabled() {
		a, err := storage.NewReportArchive(ctx, cfg.MinIO)
		if err != nil {
			log.Error().Err(err).Msg("archivo de reportes deshabilitado")
		} else {
			archive = a
		}
	}

	catalog := sample.NewCatalog(time.Now())
	activityUC := dashboard.NewActivityUseCase(activityRepo, time.Now, log.Component("activity"))
	drugsPanel := dashboard.NewDrugsPanel(services.Stock.Drugs, log.Component("drugs-panel"))
	defer drugsPanel.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/health"
	})))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpMetrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Impilo Stock Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(services.Auth, time.Now),
		OverviewUC:   dashboard.NewOverviewUseCase(catalog),
		AlertsUC:     dashboard.NewAlertsUseCase(catalog, time.Now),
		RegionsUC:    dashboard.NewRegionsUseCase(catalog),
		ActivityUC:   activityUC,
		InventoryUC:  dashboard.NewInventoryUseCase(catalog, activityUC, infrapdf.NewMarotoReportGenerator(), archive, client, time.Now, log),
		StockUC:      dashboard.NewStockUseCase(client, activityUC),
		DrugsPanel:   drugsPanel,
		DashboardURL: cfg.HTTP.PublicURL,
		Now:          time.Now,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
