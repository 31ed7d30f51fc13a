package main

import (
	"context"
	"net/http"
	"time"

	"github.com/flexprice/billing-console/internal/api"
	v1 "github.com/flexprice/billing-console/internal/api/v1"
	"github.com/flexprice/billing-console/internal/auth"
	"github.com/flexprice/billing-console/internal/cache"
	"github.com/flexprice/billing-console/internal/client"
	"github.com/flexprice/billing-console/internal/config"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/service"
	sentry "github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			cache.Initialize,
			client.NewBaseClient,
			service.NewServiceParams,
			service.NewPlanService,
			service.NewPriceService,
			service.NewTierEditorService,
			service.NewPhaseManagerService,
			service.NewCreditGrantService,
			service.NewCouponService,
			service.NewTaxRateService,
			service.NewInvoiceService,
			service.NewTaskService,
			auth.NewProvider,
			newHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			initSentry,
			startServer,
		),
	)

	app.Run()
}

func newHandlers(
	params service.ServiceParams,
	planService service.PlanService,
	priceService service.PriceService,
	tierService service.TierEditorService,
	phaseService service.PhaseManagerService,
	creditGrantService service.CreditGrantService,
	couponService service.CouponService,
	taxRateService service.TaxRateService,
	invoiceService service.InvoiceService,
	taskService service.TaskService,
	provider auth.Provider,
	log *logger.Logger,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Auth:        v1.NewAuthHandler(provider, log),
		Plan:        v1.NewPlanHandler(planService, log),
		Price:       v1.NewPriceHandler(priceService, log),
		Tier:        v1.NewTierHandler(tierService, log),
		Phase:       v1.NewPhaseHandler(phaseService, log),
		CreditGrant: v1.NewCreditGrantHandler(creditGrantService, log),
		Coupon:      v1.NewCouponHandler(couponService, log),
		TaxRate:     v1.NewTaxRateHandler(taxRateService, log),
		Invoice:     v1.NewInvoiceHandler(invoiceService, log),
		Task:        v1.NewTaskHandler(taskService, log),
	}
}

func initSentry(cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Sentry.Enabled {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      string(cfg.Deployment.Mode),
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		log.Errorw("failed to initialize sentry", "error", err)
		return err
	}
	return nil
}

func startServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Configuration, log *logger.Logger) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorw("server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			sentry.Flush(2 * time.Second)
			return srv.Shutdown(ctx)
		},
	})
}
