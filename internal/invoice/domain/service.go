package domain

import (
	"context"
	"errors"
)

type Service interface {
	ListLines(ctx context.Context, invoiceID string) ([]InvoiceLine, error)
}

var ErrInvalidInvoice = errors.New("invalid_invoice")
