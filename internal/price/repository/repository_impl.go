package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricedomain.Repository {
	return &repo{}
}

const priceColumns = `id, country, segment, pricing_type, version, unit_price_net, currency, active, created_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, p *pricedomain.PriceConfig) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO price_configs (`+priceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Country,
		p.Segment,
		p.PricingType,
		p.Version,
		p.UnitPriceNet,
		p.Currency,
		p.Active,
		p.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*pricedomain.PriceConfig, error) {
	var p pricedomain.PriceConfig
	err := db.WithContext(ctx).Raw(
		`SELECT `+priceColumns+` FROM price_configs WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB, country, segment string, pricingType pricedomain.PricingType) (*pricedomain.PriceConfig, error) {
	var p pricedomain.PriceConfig
	err := db.WithContext(ctx).Raw(
		`SELECT `+priceColumns+`
		 FROM price_configs
		 WHERE country = ? AND segment = ? AND pricing_type = ? AND active = ?
		 ORDER BY version DESC
		 LIMIT 1`,
		country,
		segment,
		pricingType,
		true,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) MaxVersion(ctx context.Context, db *gorm.DB, country, segment string, pricingType pricedomain.PricingType) (int32, error) {
	var version int32
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(version), 0)
		 FROM price_configs
		 WHERE country = ? AND segment = ? AND pricing_type = ?`,
		country,
		segment,
		pricingType,
	).Scan(&version).Error
	return version, err
}

func (r *repo) DeactivateAll(ctx context.Context, db *gorm.DB, country, segment string, pricingType pricedomain.PricingType) error {
	return db.WithContext(ctx).Exec(
		`UPDATE price_configs SET active = ?
		 WHERE country = ? AND segment = ? AND pricing_type = ? AND active = ?`,
		false,
		country,
		segment,
		pricingType,
		true,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, country string) ([]pricedomain.PriceConfig, error) {
	var items []pricedomain.PriceConfig
	stmt := db.WithContext(ctx).Model(&pricedomain.PriceConfig{})
	if country != "" {
		stmt = stmt.Where("country = ?", country)
	}
	err := stmt.
		Order("country ASC").
		Order("segment ASC").
		Order("pricing_type ASC").
		Order("version DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
