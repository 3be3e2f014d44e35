package http

import (
	"github.com/crossbuy/backend/internal/interfaces/http/handler"
	"github.com/crossbuy/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	loggerpkg "github.com/crossbuy/backend/internal/infrastructure/logger"
)

// RouterConfig holds the handlers wired into the HTTP router
type RouterConfig struct {
	Logger             *zap.Logger
	SystemHandler      *handler.SystemHandler
	OrderHandler       *handler.OrderHandler
	FulfillmentHandler *handler.FulfillmentHandler
}

// NewRouter builds the gin engine with all middleware and routes registered
func NewRouter(cfg RouterConfig) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		loggerpkg.GinMiddleware(cfg.Logger),
		loggerpkg.Recovery(cfg.Logger),
	)

	engine.GET("/health", cfg.SystemHandler.Health)

	api := engine.Group("/api/v1")
	{
		api.GET("/system/info", cfg.SystemHandler.GetSystemInfo)

		orders := api.Group("/orders")
		{
			orders.POST("", cfg.OrderHandler.Create)
			orders.GET("", cfg.OrderHandler.List)
			orders.GET("/:id", cfg.OrderHandler.Get)
			orders.POST("/:id/payments", cfg.OrderHandler.AddPayment)
			orders.POST("/:id/cancel", cfg.OrderHandler.Cancel)
			orders.DELETE("/:id", cfg.OrderHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("/:id/purchases", cfg.FulfillmentHandler.ListPurchasesByProduct)
			products.GET("/:id/receptions", cfg.FulfillmentHandler.ListReceptionsByProduct)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", cfg.FulfillmentHandler.CreatePurchase)
			purchases.POST("/:id/refund", cfg.FulfillmentHandler.RefundPurchase)
			purchases.DELETE("/:id", cfg.FulfillmentHandler.DeletePurchase)
		}

		receptions := api.Group("/receptions")
		{
			receptions.POST("", cfg.FulfillmentHandler.CreateReception)
			receptions.DELETE("/:id", cfg.FulfillmentHandler.DeleteReception)
		}

		deliveries := api.Group("/deliveries")
		{
			deliveries.POST("", cfg.FulfillmentHandler.CreateDelivery)
			deliveries.DELETE("/:id", cfg.FulfillmentHandler.DeleteDelivery)
		}

		receipts := api.Group("/receipts")
		{
			receipts.POST("", cfg.FulfillmentHandler.CreateReceipt)
			receipts.GET("/:id", cfg.FulfillmentHandler.GetReceipt)
			receipts.POST("/:id/payments", cfg.FulfillmentHandler.AddReceiptPayment)
		}
	}

	return engine
}
