// internal/router/router.go
package router

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/norruva/dpp-backend/internal/ai"
	"github.com/norruva/dpp-backend/internal/config"
	"github.com/norruva/dpp-backend/internal/handlers"
	"github.com/norruva/dpp-backend/internal/middleware"
	"github.com/norruva/dpp-backend/internal/services"
	"github.com/norruva/dpp-backend/internal/storage"
)

// Initialize wires services, handlers and middleware. Background work started
// here, such as rate limiter cleanup, stops when ctx is cancelled.
func Initialize(ctx context.Context, cfg *config.Config, records *storage.RecordStore, flows ai.Flows) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}
	supplierService := services.NewSupplierService(records)
	productService := services.NewProductService(records, supplierService, flows, storageService)
	sustainabilityService := services.NewSustainabilityService(flows)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	sustainabilityHandler := handlers.NewSustainabilityHandler(sustainabilityService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.GeneralRateLimit(ctx, cfg.Server.RequestsPerSec))

	aiLimit := middleware.NewAIRateLimiter(ctx, cfg.AI.RequestsPerMin).Middleware()

	// Health check
	r.GET("/health", handlers.Health)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/completeness/summary", productHandler.GetPortfolioCompleteness)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/edit", productHandler.BeginEdit)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.GET("/:id/completeness", productHandler.GetCompleteness)

			// AI backed operations
			products.POST("/:id/image", aiLimit, productHandler.GenerateImage)
			products.POST("/:id/claims/suggest", aiLimit, productHandler.SuggestClaims)
			products.POST("/:id/compliance/check", aiLimit, productHandler.CheckCompliance)
			products.POST("/:id/eprel/sync", aiLimit, productHandler.SyncEPREL)

			products.POST("/:id/lifecycle/advance", productHandler.AdvanceLifecycle)
			products.POST("/:id/compliance/:regulation/verify", productHandler.VerifyDocument)

			products.POST("/:id/supply-chain", productHandler.LinkSupplier)
			products.PUT("/:id/supply-chain", productHandler.UpdateSupplierLink)
			products.DELETE("/:id/supply-chain", productHandler.UnlinkSupplier)
		}

		// Supplier routes
		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.GetSuppliers)
			suppliers.POST("", supplierHandler.CreateSupplier)
			suppliers.GET("/:id", supplierHandler.GetSupplier)
		}

		// Sustainability routes
		sustainability := v1.Group("/sustainability")
		{
			sustainability.GET("/overview", sustainabilityHandler.GetOverview)
			sustainability.POST("/csrd-summary", aiLimit, sustainabilityHandler.GenerateCSRDSummary)
		}

		v1.GET("/completeness/fields", handlers.GetCompletenessFields)
	}

	return r, nil
}
