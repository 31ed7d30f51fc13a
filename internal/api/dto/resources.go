package dto

import (
	"time"

	"github.com/flexprice/billing-console/internal/domain/subscription"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
)

// The console reads these resources and renders them as-is; creation and
// state transitions happen in the billing backend.

type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	types.BaseModel
}

type ListPaymentsResponse = types.ListResponse[*PaymentResponse]

type FeatureResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LookupKey    string `json:"lookup_key,omitempty"`
	Type         string `json:"type"`
	MeterID      string `json:"meter_id,omitempty"`
	UnitSingular string `json:"unit_singular,omitempty"`
	UnitPlural   string `json:"unit_plural,omitempty"`
	types.BaseModel
}

type ListFeaturesResponse = types.ListResponse[*FeatureResponse]

type WalletResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Currency       string          `json:"currency"`
	Balance        decimal.Decimal `json:"balance"`
	CreditsBalance decimal.Decimal `json:"credits_balance"`
	types.BaseModel
}

type ListWalletsResponse = types.ListResponse[*WalletResponse]

type CreditNoteResponse struct {
	ID         string          `json:"id"`
	InvoiceID  string          `json:"invoice_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Reason     string          `json:"reason,omitempty"`
	NoteStatus string          `json:"credit_note_status"`
	types.BaseModel
}

type ListCreditNotesResponse = types.ListResponse[*CreditNoteResponse]

type SubscriptionResponse struct {
	ID                 string                `json:"id"`
	CustomerID         string                `json:"customer_id"`
	PlanID             string                `json:"plan_id"`
	SubscriptionStatus string                `json:"subscription_status"`
	Currency           string                `json:"currency"`
	BillingPeriod      types.BillingPeriod   `json:"billing_period"`
	StartDate          time.Time             `json:"start_date"`
	EndDate            *time.Time            `json:"end_date,omitempty"`
	Phases             []*subscription.Phase `json:"phases,omitempty"`
	types.BaseModel
}

type ListSubscriptionsResponse = types.ListResponse[*SubscriptionResponse]
