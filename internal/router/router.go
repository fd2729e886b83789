package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "foliogate/docs"
	"foliogate/internal/handler"
	"foliogate/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier *middleware.TokenVerifier,
	allowedOrigins []string,
	importH *handler.ImportHandler,
	eventsH *handler.ImportEventsHandler,
	batchH *handler.BatchHandler,
	transactionH *handler.TransactionHandler,
	portfolioH *handler.PortfolioHandler,
	searchH *handler.SearchHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/healthz", "/readyz"))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Everything under /api/v1 requires a bearer token issued by the portfolio API
	protected := r.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(verifier))

	// Import pipeline
	imports := protected.Group("/imports")
	imports.POST("", importH.Start)
	imports.GET("/history", importH.History)
	imports.GET("/:id", importH.Get)
	imports.DELETE("/:id", importH.Clear)
	imports.GET("/:id/events", eventsH.Stream)
	imports.GET("/:id/files/:index", importH.Review)
	imports.DELETE("/:id/files/:index", importH.DiscardFile)
	imports.POST("/:id/files/:index/import", importH.Import)
	imports.PATCH("/:id/files/:index/rows/:row", importH.EditRow)
	imports.DELETE("/:id/files/:index/rows/:row", importH.ExcludeRow)

	// Manual batches
	batches := protected.Group("/batches")
	batches.POST("", batchH.Create)
	batches.GET("/:id", batchH.Get)
	batches.DELETE("/:id", batchH.Discard)
	batches.POST("/:id/rows", batchH.AddRow)
	batches.PATCH("/:id/rows/:row", batchH.EditRow)
	batches.DELETE("/:id/rows/:row", batchH.RemoveRow)
	batches.POST("/:id/submit", batchH.Submit)

	// Transaction history (pass-through)
	transactions := protected.Group("/transactions")
	transactions.GET("", transactionH.List)
	transactions.DELETE("", transactionH.DeleteMany)
	transactions.GET("/export", transactionH.Export)
	transactions.PUT("/:id", transactionH.Update)
	transactions.DELETE("/:id", transactionH.Delete)

	// Portfolio reports (pass-through)
	portfolio := protected.Group("/portfolio")
	portfolio.GET("/summary", portfolioH.Summary)
	portfolio.GET("/holdings", portfolioH.Holdings)
	portfolio.GET("/historical-chart", portfolioH.HistoricalChart)

	// Lookup
	search := protected.Group("/search")
	search.GET("/symbols", searchH.Symbols)
	search.GET("/brokers", searchH.Brokers)

	return r
}
