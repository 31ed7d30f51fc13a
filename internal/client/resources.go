package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/types"
)

// The remaining resources are read-mostly from the console's point of view;
// each gets the same thin wrapper shape.

type PaymentClient interface {
	Get(ctx context.Context, id string) (*dto.PaymentResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListPaymentsResponse, error)
}

type paymentClient struct {
	base *BaseClient
}

func NewPaymentClient(base *BaseClient) PaymentClient {
	return &paymentClient{base: base}
}

func (c *paymentClient) Get(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	var resp dto.PaymentResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/payments/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *paymentClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListPaymentsResponse, error) {
	var resp dto.ListPaymentsResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/payments", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type FeatureClient interface {
	Get(ctx context.Context, id string) (*dto.FeatureResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListFeaturesResponse, error)
}

type featureClient struct {
	base *BaseClient
}

func NewFeatureClient(base *BaseClient) FeatureClient {
	return &featureClient{base: base}
}

func (c *featureClient) Get(ctx context.Context, id string) (*dto.FeatureResponse, error) {
	var resp dto.FeatureResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/features/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *featureClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListFeaturesResponse, error) {
	var resp dto.ListFeaturesResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/features", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type WalletClient interface {
	ListByCustomer(ctx context.Context, customerID string) (*dto.ListWalletsResponse, error)
}

type walletClient struct {
	base *BaseClient
}

func NewWalletClient(base *BaseClient) WalletClient {
	return &walletClient{base: base}
}

func (c *walletClient) ListByCustomer(ctx context.Context, customerID string) (*dto.ListWalletsResponse, error) {
	params := map[string]interface{}{
		"customer_id": customerID,
	}
	var resp dto.ListWalletsResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/wallets", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type CreditNoteClient interface {
	Get(ctx context.Context, id string) (*dto.CreditNoteResponse, error)
	ListByInvoice(ctx context.Context, invoiceID string) (*dto.ListCreditNotesResponse, error)
}

type creditNoteClient struct {
	base *BaseClient
}

func NewCreditNoteClient(base *BaseClient) CreditNoteClient {
	return &creditNoteClient{base: base}
}

func (c *creditNoteClient) Get(ctx context.Context, id string) (*dto.CreditNoteResponse, error) {
	var resp dto.CreditNoteResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/credit-notes/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *creditNoteClient) ListByInvoice(ctx context.Context, invoiceID string) (*dto.ListCreditNotesResponse, error) {
	params := map[string]interface{}{
		"invoice_id": invoiceID,
	}
	var resp dto.ListCreditNotesResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/credit-notes", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type SubscriptionClient interface {
	Get(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListSubscriptionsResponse, error)
	// UpdatePhases submits the full phase timeline wholesale; the backend
	// performs its own authoritative validation.
	UpdatePhases(ctx context.Context, id string, req dto.PhaseTimelineRequest) (*dto.SubscriptionResponse, error)
}

type subscriptionClient struct {
	base *BaseClient
}

func NewSubscriptionClient(base *BaseClient) SubscriptionClient {
	return &subscriptionClient{base: base}
}

func (c *subscriptionClient) Get(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	var resp dto.SubscriptionResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/subscriptions/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *subscriptionClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListSubscriptionsResponse, error) {
	var resp dto.ListSubscriptionsResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/subscriptions", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *subscriptionClient) UpdatePhases(ctx context.Context, id string, req dto.PhaseTimelineRequest) (*dto.SubscriptionResponse, error) {
	var resp dto.SubscriptionResponse
	if err := c.base.Do(ctx, http.MethodPut, fmt.Sprintf("/v1/subscriptions/%s/phases", id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type CouponClient interface {
	Create(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListCouponsResponse, error)
	Delete(ctx context.Context, id string) error
}

type couponClient struct {
	base *BaseClient
}

func NewCouponClient(base *BaseClient) CouponClient {
	return &couponClient{base: base}
}

func (c *couponClient) Create(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	var resp dto.CouponResponse
	if err := c.base.Do(ctx, http.MethodPost, "/v1/coupons", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *couponClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListCouponsResponse, error) {
	var resp dto.ListCouponsResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/coupons", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *couponClient) Delete(ctx context.Context, id string) error {
	return c.base.Do(ctx, http.MethodDelete, fmt.Sprintf("/v1/coupons/%s", id), nil, nil, nil)
}

type TaxRateClient interface {
	Create(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListTaxRatesResponse, error)
	Delete(ctx context.Context, id string) error
}

type taxRateClient struct {
	base *BaseClient
}

func NewTaxRateClient(base *BaseClient) TaxRateClient {
	return &taxRateClient{base: base}
}

func (c *taxRateClient) Create(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error) {
	var resp dto.TaxRateResponse
	if err := c.base.Do(ctx, http.MethodPost, "/v1/tax-rates", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *taxRateClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListTaxRatesResponse, error) {
	var resp dto.ListTaxRatesResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/tax-rates", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *taxRateClient) Delete(ctx context.Context, id string) error {
	return c.base.Do(ctx, http.MethodDelete, fmt.Sprintf("/v1/tax-rates/%s", id), nil, nil, nil)
}
