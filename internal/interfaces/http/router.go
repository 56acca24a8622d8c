package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/auth"
	"github.com/tu-usuario/stock-control/internal/application/movement"
	"github.com/tu-usuario/stock-control/internal/application/report"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ItemUC     *usecase.ItemUseCase
	CategoryUC *usecase.CategoryUseCase
	LocationUC *usecase.LocationUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	RepairUC   *usecase.RepairUseCase
	Applier    *movement.Applier
	MovementQ  *movement.QueryUseCase
	ReportUC   *report.UseCase
	Timeline   *audit.Timeline
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// RBAC: viewer solo lee; admin/manager/employee mutan; la gestión de usuarios
// es exclusiva de admin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI solo si el swagger.json generado está presente.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
		}))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	write := RequireWriter()

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", write, itemHandler.Create)
	items.Put("/:id", write, itemHandler.Update)
	items.Delete("/:id", write, itemHandler.Delete)

	// Stock movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Applier, deps.MovementQ)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", write, movementHandler.Create)
	movements.Put("/:id", write, movementHandler.Update)
	movements.Delete("/:id", write, movementHandler.Delete)

	// Categories y subcategories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", write, categoryHandler.Create)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", write, categoryHandler.Delete)
	categories.Get("/:id/subcategories", categoryHandler.ListSubcategories)
	categories.Post("/:id/subcategories", write, categoryHandler.CreateSubcategory)
	categories.Delete("/:id/subcategories/:subId", write, categoryHandler.DeleteSubcategory)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/utilization", locationHandler.Utilization)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", write, locationHandler.Create)
	locations.Put("/:id", write, locationHandler.Update)
	locations.Delete("/:id", write, locationHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", write, supplierHandler.Create)
	suppliers.Put("/:id", write, supplierHandler.Update)
	suppliers.Delete("/:id", write, supplierHandler.Delete)

	// Repairs
	repairs := protected.Group("/repairs")
	repairHandler := NewRepairHandler(deps.RepairUC)
	repairs.Get("/", repairHandler.List)
	repairs.Get("/:id", repairHandler.GetByID)
	repairs.Post("/", write, repairHandler.Create)
	repairs.Put("/:id", write, repairHandler.Update)
	repairs.Post("/:id/return", write, repairHandler.MarkAsReturned)
	repairs.Delete("/:id", write, repairHandler.Delete)

	// Reports (solo lectura, cualquier rol autenticado)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/critical", reportHandler.Critical)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/top-items", reportHandler.TopItems)
	reports.Get("/movement-summary", reportHandler.MovementSummary)
	reports.Get("/valuation/export.csv", reportHandler.ExportValuationCSV)
	reports.Get("/low-stock/export.csv", reportHandler.ExportLowStockCSV)
	reports.Get("/movement-summary/export.csv", reportHandler.ExportMovementSummaryCSV)
	reports.Get("/inventory/export.pdf", reportHandler.ExportInventoryPDF)

	// Activity log (lectura para admin y manager)
	activity := protected.Group("/activity", RequireRole(entity.RoleAdmin, entity.RoleManager))
	activityHandler := NewActivityHandler(deps.Timeline)
	activity.Get("/", activityHandler.List)
	activity.Get("/export.csv", activityHandler.ExportCSV)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
