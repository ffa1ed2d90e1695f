package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, line *InvoiceLine) error
	ListByInvoice(ctx context.Context, db *gorm.DB, invoiceID string) ([]InvoiceLine, error)
}
