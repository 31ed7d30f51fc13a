package dto

import (
	"time"

	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusFinalized InvoiceStatus = "FINALIZED"
	InvoiceStatusVoided    InvoiceStatus = "VOIDED"
)

type InvoicePaymentStatus string

const (
	InvoicePaymentStatusPending   InvoicePaymentStatus = "PENDING"
	InvoicePaymentStatusSucceeded InvoicePaymentStatus = "SUCCEEDED"
	InvoicePaymentStatusFailed    InvoicePaymentStatus = "FAILED"
)

type InvoiceLineItemResponse struct {
	ID          string          `json:"id"`
	PriceID     string          `json:"price_id,omitempty"`
	DisplayName string          `json:"display_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PeriodStart *time.Time      `json:"period_start,omitempty"`
	PeriodEnd   *time.Time      `json:"period_end,omitempty"`
}

type InvoiceResponse struct {
	ID              string                    `json:"id"`
	InvoiceNumber   string                    `json:"invoice_number"`
	CustomerID      string                    `json:"customer_id"`
	SubscriptionID  *string                   `json:"subscription_id,omitempty"`
	InvoiceStatus   InvoiceStatus             `json:"invoice_status"`
	PaymentStatus   InvoicePaymentStatus      `json:"payment_status"`
	Currency        string                    `json:"currency"`
	AmountDue       decimal.Decimal           `json:"amount_due"`
	AmountPaid      decimal.Decimal           `json:"amount_paid"`
	AmountRemaining decimal.Decimal           `json:"amount_remaining"`
	PeriodStart     *time.Time                `json:"period_start,omitempty"`
	PeriodEnd       *time.Time                `json:"period_end,omitempty"`
	DueDate         *time.Time                `json:"due_date,omitempty"`
	LineItems       []InvoiceLineItemResponse `json:"line_items,omitempty"`
	types.BaseModel
}

// ListInvoicesResponse represents the response for listing invoices.
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]
