package api

import (
	v1 "github.com/flexprice/billing-console/internal/api/v1"
	"github.com/flexprice/billing-console/internal/auth"
	"github.com/flexprice/billing-console/internal/config"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every v1 handler for router wiring.
type Handlers struct {
	Health      *v1.HealthHandler
	Auth        *v1.AuthHandler
	Plan        *v1.PlanHandler
	Price       *v1.PriceHandler
	Tier        *v1.TierHandler
	Phase       *v1.PhaseHandler
	CreditGrant *v1.CreditGrantHandler
	Coupon      *v1.CouponHandler
	TaxRate     *v1.TaxRateHandler
	Invoice     *v1.InvoiceHandler
	Task        *v1.TaskHandler
}

// NewRouter builds the gin engine with the console's middleware chain and
// route table.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger, provider auth.Provider) *gin.Engine {
	if cfg.Deployment.Mode != config.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.RecoveryWithWriter(log.GetGinLogger()),
		middleware.RequestIDMiddleware,
		middleware.EnvironmentMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	public := router.Group("/v1")
	public.POST("/auth/login", handlers.Auth.Login)

	private := router.Group("/v1")
	private.Use(
		middleware.AuthMiddleware(provider, log),
		middleware.SentryTenantContextMiddleware,
	)

	plans := private.Group("/plans")
	{
		plans.POST("", handlers.Plan.CreatePlan)
		plans.GET("", handlers.Plan.ListPlans)
		plans.GET("/:id", handlers.Plan.GetPlan)
		plans.GET("/:id/normalized", handlers.Plan.GetNormalizedPlan)
		plans.GET("/:id/price-table", handlers.Plan.GetPriceTable)
		plans.PUT("/:id", handlers.Plan.UpdatePlan)
		plans.DELETE("/:id", handlers.Plan.DeletePlan)
	}

	prices := private.Group("/prices")
	{
		prices.POST("", handlers.Price.CreatePrice)
		prices.POST("/preview-cost", handlers.Price.PreviewCost)
		prices.GET("/:id", handlers.Price.GetPrice)
		prices.DELETE("/:id", handlers.Price.DeletePrice)
	}

	tiers := private.Group("/tiers")
	{
		tiers.POST("/add", handlers.Tier.AddTier)
		tiers.POST("/remove", handlers.Tier.RemoveTier)
		tiers.POST("/update", handlers.Tier.UpdateTier)
		tiers.POST("/validate", handlers.Tier.ValidateTiers)
	}

	phases := private.Group("/phases")
	{
		phases.POST("/add", handlers.Phase.AddPhase)
		phases.POST("/remove", handlers.Phase.RemovePhase)
		phases.POST("/update", handlers.Phase.UpdatePhase)
		phases.POST("/validate", handlers.Phase.ValidateTimeline)
	}
	private.PUT("/subscriptions/:id/phases", handlers.Phase.SubmitTimeline)

	creditGrants := private.Group("/credit-grants")
	{
		creditGrants.POST("/build", handlers.CreditGrant.BuildCreditGrant)
		creditGrants.POST("/validate", handlers.CreditGrant.ValidateCreditGrants)
	}

	coupons := private.Group("/coupons")
	{
		coupons.POST("", handlers.Coupon.CreateCoupon)
		coupons.GET("", handlers.Coupon.ListCoupons)
		coupons.DELETE("/:id", handlers.Coupon.DeleteCoupon)
	}

	taxRates := private.Group("/tax-rates")
	{
		taxRates.POST("", handlers.TaxRate.CreateTaxRate)
		taxRates.GET("", handlers.TaxRate.ListTaxRates)
		taxRates.DELETE("/:id", handlers.TaxRate.DeleteTaxRate)
	}

	invoices := private.Group("/invoices")
	{
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.GET("/:id/pdf", handlers.Invoice.DownloadInvoicePDF)
	}

	tasks := private.Group("/tasks")
	{
		tasks.GET("", handlers.Task.ListTasks)
		tasks.GET("/:id", handlers.Task.GetTask)
		tasks.POST("/import-completed", handlers.Task.ImportCompleted)
		tasks.POST("/preview-import", handlers.Task.PreviewImport)
	}

	return router
}
