package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/reconciliation"
	"github.com/jhoicas/chronos-ledger/internal/application/sales"
	"github.com/jhoicas/chronos-ledger/internal/application/transfer"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/observability"
	"github.com/jhoicas/chronos-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router. Metrics e Idempotency pueden ser nil.
type RouterDeps struct {
	Ledger         *ledgerapp.Service
	Transfer       *transfer.Service
	Reconciliation *reconciliation.Service
	Sales          *sales.Service
	Metrics        *observability.Metrics
	Idempotency    *cache.IdempotencyStore
	JWTSecret      string
	ServiceName    string
}

// NewApp instancia de fiber para la API. Immutable: los ids de la ruta se guardan en los repositorios.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	return app
}

// Docs sirve Swagger UI en /docs y la especificación en /docs/swagger.json.
func Docs(app *fiber.App, filePath string) {
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Chronos Ledger API",
	}))
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(deps.Metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token); los POST aceptan Idempotency-Key
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), Idempotency(deps.Idempotency))
	read := RequireRole(jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleViewer)
	write := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
	admin := RequireRole(jwt.RoleAdmin)

	// Cuentas y libro
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.Ledger, deps.Reconciliation)
	accounts.Get("/", read, accountHandler.List)
	accounts.Post("/", admin, accountHandler.Create)
	accounts.Get("/:id", read, accountHandler.GetByID)
	accounts.Get("/:id/movements", read, accountHandler.ListMovements)
	accounts.Get("/:id/summary", read, accountHandler.Summary)
	accounts.Post("/:id/income", write, accountHandler.Income)
	accounts.Post("/:id/expense", write, accountHandler.Expense)
	accounts.Post("/:id/reconcile", write, accountHandler.Reconcile)
	accounts.Post("/:id/recompute", admin, accountHandler.Recompute)

	movementHandler := NewMovementHandler(deps.Ledger)
	protected.Delete("/movements/:id", admin, movementHandler.Delete)

	transferHandler := NewTransferHandler(deps.Transfer)
	protected.Post("/transfers", write, transferHandler.Create)

	// Ventas y abonos
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales)
	salesGroup.Post("/preview", read, saleHandler.Preview)
	salesGroup.Post("/", write, saleHandler.Create)
	salesGroup.Get("/", read, saleHandler.List)
	salesGroup.Get("/:id", read, saleHandler.GetByID)
	salesGroup.Post("/:id/advances", write, saleHandler.Advance)

	// Órdenes de compra
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.Sales)
	orders.Post("/", write, orderHandler.Create)
	orders.Get("/", read, orderHandler.List)
	orders.Get("/:id", read, orderHandler.GetByID)
	orders.Post("/:id/payments", write, orderHandler.Pay)

	// Clientes, distribuidores y deudas
	partyHandler := NewPartyHandler(deps.Sales)
	protected.Post("/clients", write, partyHandler.CreateClient)
	protected.Get("/clients/:id", read, partyHandler.GetClient)
	protected.Post("/distributors", write, partyHandler.CreateDistributor)
	protected.Get("/distributors/:id", read, partyHandler.GetDistributor)
	protected.Post("/debts/recompute", write, partyHandler.RecomputeDebts)
}
