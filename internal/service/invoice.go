package service

import (
	"context"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
)

type InvoiceService interface {
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoicesResponse, error)

	// GetInvoicePDF streams the rendered invoice for download. The bytes
	// are passed through untouched.
	GetInvoicePDF(ctx context.Context, id string) ([]byte, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("Please provide a valid invoice ID").
			Mark(ierr.ErrValidation)
	}
	return s.InvoiceClient.Get(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.InvoiceClient.List(ctx, filter)
}

func (s *invoiceService) GetInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("Please provide a valid invoice ID").
			Mark(ierr.ErrValidation)
	}

	data, err := s.InvoiceClient.DownloadPDF(ctx, id)
	if err != nil {
		s.Logger.Errorw("failed to download invoice pdf", "invoice_id", id, "error", err)
		return nil, err
	}
	return data, nil
}
