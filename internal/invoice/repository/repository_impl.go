package repository

import (
	"context"

	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() invoicedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, line *invoicedomain.InvoiceLine) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoice_lines (
			id, invoice_id, listing_id, description, quantity, unit_price_net, discount_amount,
			net_amount, tax_rate, tax_amount, gross_amount, currency, country,
			price_config_id, price_config_version, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		line.ID,
		line.InvoiceID,
		line.ListingID,
		line.Description,
		line.Quantity,
		line.UnitPriceNet,
		line.DiscountAmount,
		line.NetAmount,
		line.TaxRate,
		line.TaxAmount,
		line.GrossAmount,
		line.Currency,
		line.Country,
		line.PriceConfigID,
		line.PriceConfigVersion,
		line.Metadata,
		line.CreatedAt,
	).Error
}

func (r *repo) ListByInvoice(ctx context.Context, db *gorm.DB, invoiceID string) ([]invoicedomain.InvoiceLine, error) {
	var items []invoicedomain.InvoiceLine
	err := db.WithContext(ctx).
		Model(&invoicedomain.InvoiceLine{}).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
