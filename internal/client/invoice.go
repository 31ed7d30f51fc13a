package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// InvoiceClient wraps the backend's invoice resource.
type InvoiceClient interface {
	Get(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoicesResponse, error)
	// DownloadPDF fetches the rendered invoice as a PDF byte stream. The
	// bytes are passed through to the browser; no parsing happens here.
	DownloadPDF(ctx context.Context, id string) ([]byte, error)
}

type invoiceClient struct {
	base *BaseClient
}

func NewInvoiceClient(base *BaseClient) InvoiceClient {
	return &invoiceClient{base: base}
}

func (c *invoiceClient) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var resp dto.InvoiceResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/invoices/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *invoiceClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListInvoicesResponse, error) {
	var resp dto.ListInvoicesResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/invoices", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *invoiceClient) DownloadPDF(ctx context.Context, id string) ([]byte, error) {
	data, err := c.base.DoBinary(ctx, http.MethodGet, fmt.Sprintf("/v1/invoices/%s/pdf", id), "application/pdf")
	if err != nil {
		return nil, err
	}

	// Backends occasionally return an HTML error page with a 200; sniff the
	// magic bytes before handing the blob to the browser.
	if !filetype.IsType(data, matchers.TypePdf) {
		return nil, ierr.NewError("invoice download did not return a PDF").
			WithHint("Failed to download invoice PDF").
			WithReportableDetails(map[string]interface{}{
				"invoice_id": id,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return data, nil
}
