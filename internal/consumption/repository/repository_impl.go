package repository

import (
	"context"
	"time"

	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() consumptiondomain.Repository {
	return &repo{}
}

const consumptionColumns = `id, listing_id, seller_id, user_id, country, segment, pricing_type, source,
	charge_amount, discount_amount, tax_amount, gross_amount, currency, vat_rate,
	vat_rate_id, price_config_id, price_config_version, free_quota_config_id,
	subscription_id, campaign_id, invoice_line_id, created_at`

func (r *repo) ExistsForListing(ctx context.Context, db *gorm.DB, listingID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM consumption_logs WHERE listing_id = ?`,
		listingID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) FindByListing(ctx context.Context, db *gorm.DB, listingID string) (*consumptiondomain.ConsumptionLog, error) {
	var row consumptiondomain.ConsumptionLog
	err := db.WithContext(ctx).Raw(
		`SELECT `+consumptionColumns+` FROM consumption_logs WHERE listing_id = ?`,
		listingID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) CountBySourceSince(ctx context.Context, db *gorm.DB, sellerID, country string, source consumptiondomain.Source, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1)
		 FROM consumption_logs
		 WHERE seller_id = ? AND country = ? AND source = ? AND created_at > ?`,
		sellerID,
		country,
		source,
		since,
	).Scan(&count).Error
	return count, err
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, l *consumptiondomain.ConsumptionLog) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO consumption_logs (`+consumptionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.ListingID,
		l.SellerID,
		l.UserID,
		l.Country,
		l.Segment,
		l.PricingType,
		l.Source,
		l.ChargeAmount,
		l.DiscountAmount,
		l.TaxAmount,
		l.GrossAmount,
		l.Currency,
		l.VatRate,
		l.VatRateID,
		l.PriceConfigID,
		l.PriceConfigVersion,
		l.FreeQuotaConfigID,
		l.SubscriptionID,
		l.CampaignID,
		l.InvoiceLineID,
		l.CreatedAt,
	).Error
}

func (r *repo) ListBySeller(ctx context.Context, db *gorm.DB, filter consumptiondomain.ListFilter) ([]consumptiondomain.ConsumptionLog, error) {
	var items []consumptiondomain.ConsumptionLog
	stmt := db.WithContext(ctx).
		Model(&consumptiondomain.ConsumptionLog{}).
		Where("seller_id = ?", filter.SellerID)
	if filter.Source != "" {
		stmt = stmt.Where("source = ?", filter.Source)
	}
	if filter.BeforeID != 0 {
		stmt = stmt.Where("id < ?", filter.BeforeID)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	if err := stmt.Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
