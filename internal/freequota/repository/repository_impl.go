package repository

import (
	"context"

	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() freequotadomain.Repository {
	return &repo{}
}

const freeQuotaColumns = `id, country, segment, quota_amount, period_days, active, created_at, updated_at`

func (r *repo) FindActive(ctx context.Context, db *gorm.DB, country, segment string) (*freequotadomain.FreeQuotaConfig, error) {
	return r.findOne(ctx, db,
		`SELECT `+freeQuotaColumns+`
		 FROM free_quota_configs
		 WHERE country = ? AND segment = ? AND active = ?`,
		country, segment, true,
	)
}

func (r *repo) FindActiveForUpdate(ctx context.Context, db *gorm.DB, country, segment string) (*freequotadomain.FreeQuotaConfig, error) {
	return r.findOne(ctx, db,
		`SELECT `+freeQuotaColumns+`
		 FROM free_quota_configs
		 WHERE country = ? AND segment = ? AND active = ?
		 FOR UPDATE`,
		country, segment, true,
	)
}

func (r *repo) FindByScope(ctx context.Context, db *gorm.DB, country, segment string) (*freequotadomain.FreeQuotaConfig, error) {
	return r.findOne(ctx, db,
		`SELECT `+freeQuotaColumns+`
		 FROM free_quota_configs
		 WHERE country = ? AND segment = ?`,
		country, segment,
	)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*freequotadomain.FreeQuotaConfig, error) {
	var cfg freequotadomain.FreeQuotaConfig
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&cfg).Error; err != nil {
		return nil, err
	}
	if cfg.ID == 0 {
		return nil, nil
	}
	return &cfg, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cfg *freequotadomain.FreeQuotaConfig) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO free_quota_configs (`+freeQuotaColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.ID,
		cfg.Country,
		cfg.Segment,
		cfg.QuotaAmount,
		cfg.PeriodDays,
		cfg.Active,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, cfg *freequotadomain.FreeQuotaConfig) error {
	return db.WithContext(ctx).Exec(
		`UPDATE free_quota_configs
		 SET quota_amount = ?, period_days = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		cfg.QuotaAmount,
		cfg.PeriodDays,
		cfg.Active,
		cfg.UpdatedAt,
		cfg.ID,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, country string) ([]freequotadomain.FreeQuotaConfig, error) {
	var items []freequotadomain.FreeQuotaConfig
	stmt := db.WithContext(ctx).Model(&freequotadomain.FreeQuotaConfig{})
	if country != "" {
		stmt = stmt.Where("country = ?", country)
	}
	if err := stmt.Order("country ASC").Order("segment ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
