package router

import (
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/config"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/handler"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/middleware"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/repository"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	productRepo := repository.NewProductRepository(db)
	productSvc := service.NewProductService(productRepo)
	productsH := handler.NewProductsHandler(productSvc)

	r.GET("/health", handler.Health(db))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productsH.List)
			products.GET("/low-stock", productsH.LowStock)
			products.GET("/:id", productsH.GetByID)
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.PATCH("/:id/status", productsH.SetStatus)
			products.PATCH("/:id/quantity", productsH.AdjustQuantity)
			products.DELETE("/:id", productsH.Delete)
		}
	}

	return r
}
