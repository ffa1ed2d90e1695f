package repository

import (
	"context"
	"time"

	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() vatdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rate *vatdomain.VatRate) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO vat_rates (
			id, country, rate, valid_from, valid_to, active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rate.ID,
		rate.Country,
		rate.Rate,
		rate.ValidFrom,
		rate.ValidTo,
		rate.Active,
		rate.CreatedAt,
		rate.UpdatedAt,
	).Error
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB, country string, at time.Time) (*vatdomain.VatRate, error) {
	var rate vatdomain.VatRate
	err := db.WithContext(ctx).Raw(
		`SELECT id, country, rate, valid_from, valid_to, active, created_at, updated_at
		 FROM vat_rates
		 WHERE country = ? AND active = ? AND valid_from <= ? AND (valid_to IS NULL OR valid_to > ?)
		 ORDER BY valid_from DESC, id DESC
		 LIMIT 1`,
		country,
		true,
		at,
		at,
	).Scan(&rate).Error
	if err != nil {
		return nil, err
	}
	if rate.ID == 0 {
		return nil, nil
	}
	return &rate, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, country string) ([]vatdomain.VatRate, error) {
	var items []vatdomain.VatRate
	stmt := db.WithContext(ctx).Model(&vatdomain.VatRate{})
	if country != "" {
		stmt = stmt.Where("country = ?", country)
	}
	if err := stmt.Order("country ASC").Order("valid_from DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
