package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GaloDurante/stockApp/internal/application/auth"
	"github.com/GaloDurante/stockApp/internal/application/sale"
	"github.com/GaloDurante/stockApp/internal/application/usecase"
	"github.com/GaloDurante/stockApp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	SaleUC    *sale.UseCase
	ReceiptUC *sale.ReceiptUseCase
	AccountUC *usecase.AccountUseCase
	ReportUC  *usecase.ReportUseCase
	AuthUC    *auth.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/restock", productHandler.Restock)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Account movements (protegido; editar y borrar solo admin)
	movements := protected.Group("/movements")
	accountHandler := NewAccountHandler(deps.AccountUC)
	movements.Post("/", accountHandler.Create)
	movements.Get("/", accountHandler.List)
	movements.Put("/:id", RequireRole(entity.RoleAdmin), accountHandler.Update)
	movements.Delete("/:id", RequireRole(entity.RoleAdmin), accountHandler.Delete)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/monthly-profit", reportHandler.MonthlyProfit)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/balances", reportHandler.AccountBalances)
}
