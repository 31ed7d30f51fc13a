package service

import (
	"github.com/flexprice/billing-console/internal/cache"
	"github.com/flexprice/billing-console/internal/client"
	"github.com/flexprice/billing-console/internal/config"
	"github.com/flexprice/billing-console/internal/logger"
)

// ServiceParams bundles the shared dependencies passed to every service.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	PlanClient         client.PlanClient
	PriceClient        client.PriceClient
	InvoiceClient      client.InvoiceClient
	TaskClient         client.TaskClient
	PaymentClient      client.PaymentClient
	FeatureClient      client.FeatureClient
	WalletClient       client.WalletClient
	CreditNoteClient   client.CreditNoteClient
	SubscriptionClient client.SubscriptionClient
	CouponClient       client.CouponClient
	TaxRateClient      client.TaxRateClient
}

// NewServiceParams wires the shared dependencies plus one client per backend
// resource over a single base client.
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	c cache.Cache,
	base *client.BaseClient,
) ServiceParams {
	return ServiceParams{
		Logger:             log,
		Config:             cfg,
		Cache:              c,
		PlanClient:         client.NewPlanClient(base),
		PriceClient:        client.NewPriceClient(base),
		InvoiceClient:      client.NewInvoiceClient(base),
		TaskClient:         client.NewTaskClient(base),
		PaymentClient:      client.NewPaymentClient(base),
		FeatureClient:      client.NewFeatureClient(base),
		WalletClient:       client.NewWalletClient(base),
		CreditNoteClient:   client.NewCreditNoteClient(base),
		SubscriptionClient: client.NewSubscriptionClient(base),
		CouponClient:       client.NewCouponClient(base),
		TaxRateClient:      client.NewTaxRateClient(base),
	}
}
