package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/auth"
	"github.com/tu-usuario/stock-control/internal/application/movement"
	"github.com/tu-usuario/stock-control/internal/application/report"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
	"github.com/tu-usuario/stock-control/internal/infrastructure/cache"
	"github.com/tu-usuario/stock-control/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-control/internal/interfaces/http"
	"github.com/tu-usuario/stock-control/pkg/config"
	"github.com/tu-usuario/stock-control/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las escrituras de stock van por el TxRunner
	// con repos atados a la transacción).
	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	repairRepo := postgres.NewRepairRepository(pool)
	logRepo := postgres.NewActivityLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de reportes: opcional, la app funciona sin Redis.
	var reportCache *cache.ReportCache
	if cfg.Redis.Enabled() {
		reportCache, err = cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer reportCache.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes habilitada")
	}

	recorder := audit.NewRecorder(logRepo)
	var applierCache movement.CacheInvalidator
	var reportUCCache report.Cache
	if reportCache != nil {
		applierCache = reportCache
		reportUCCache = reportCache
	}

	applier := movement.NewApplier(txRunner, itemRepo, applierCache)
	movementQ := movement.NewQueryUseCase(movementRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, movementRepo, recorder)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, recorder)
	locationUC := usecase.NewLocationUseCase(locationRepo, recorder)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, recorder)
	userUC := usecase.NewUserUseCase(userRepo, recorder)
	repairUC := usecase.NewRepairUseCase(repairRepo, recorder)
	reportUC := report.NewUseCase(reportRepo, reportUCCache)
	timeline := audit.NewTimeline(logRepo)
	authUC := auth.NewUseCase(userRepo, recorder, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ItemUC:     itemUC,
		CategoryUC: categoryUC,
		LocationUC: locationUC,
		SupplierUC: supplierUC,
		UserUC:     userUC,
		RepairUC:   repairUC,
		Applier:    applier,
		MovementQ:  movementQ,
		ReportUC:   reportUC,
		Timeline:   timeline,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Apagado ordenado: SIGINT/SIGTERM drenan conexiones antes de salir.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("señal recibida, apagando")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
	log.Info().Msg("aplicación detenida")
}
