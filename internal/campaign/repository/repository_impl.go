package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() campaigndomain.Repository {
	return &repo{}
}

const campaignColumns = `id, name, type, status, target, scope, country, priority,
	discount_percent, discount_amount, discount_currency, start_at, end_at, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, c *campaigndomain.Campaign) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO campaigns (`+campaignColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		c.Type,
		c.Status,
		c.Target,
		c.Scope,
		c.Country,
		c.Priority,
		c.DiscountPercent,
		c.DiscountAmount,
		c.DiscountCurrency,
		c.StartAt,
		c.EndAt,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*campaigndomain.Campaign, error) {
	var c campaigndomain.Campaign
	err := db.WithContext(ctx).Raw(
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`,
		id,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) ListApplicable(ctx context.Context, db *gorm.DB, f campaigndomain.ApplicableFilter) ([]campaigndomain.Campaign, error) {
	var items []campaigndomain.Campaign
	err := db.WithContext(ctx).Raw(
		`SELECT `+campaignColumns+`
		 FROM campaigns
		 WHERE type = ? AND status = ? AND target = ?
		   AND start_at <= ? AND end_at >= ?
		   AND (scope = ? OR (scope = ? AND country = ?))
		 ORDER BY priority DESC, updated_at DESC, id DESC`,
		f.Type,
		campaigndomain.CampaignStatusActive,
		f.Target,
		f.Now,
		f.Now,
		campaigndomain.CampaignScopeGlobal,
		campaigndomain.CampaignScopeCountry,
		f.Country,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status campaigndomain.CampaignStatus, now time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE campaigns SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		now,
		id,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, status campaigndomain.CampaignStatus) ([]campaigndomain.Campaign, error) {
	var items []campaigndomain.Campaign
	stmt := db.WithContext(ctx).Model(&campaigndomain.Campaign{})
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}
	if err := stmt.Order("priority DESC").Order("updated_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
