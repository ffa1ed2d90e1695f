package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/smallbiznis/classifieds/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

const subscriptionColumns = `id, seller_id, package_code, status, start_at, end_at,
	included_listing_quota, used_listing_quota, created_at, updated_at`

const activeSubscriptionsQuery = `SELECT ` + subscriptionColumns + `
	FROM subscriptions
	WHERE seller_id = ? AND status = ? AND start_at <= ? AND end_at > ?
	ORDER BY end_at ASC, id ASC`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, s *subscriptiondomain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (`+subscriptionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.SellerID,
		s.PackageCode,
		s.Status,
		s.StartAt,
		s.EndAt,
		s.IncludedListingQuota,
		s.UsedListingQuota,
		s.CreatedAt,
		s.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*subscriptiondomain.Subscription, error) {
	var s subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`,
		id,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, sellerID string, now time.Time) ([]subscriptiondomain.Subscription, error) {
	var items []subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		activeSubscriptionsQuery,
		sellerID,
		subscriptiondomain.SubscriptionStatusActive,
		now,
		now,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveForUpdate(ctx context.Context, db *gorm.DB, sellerID string, now time.Time) ([]subscriptiondomain.Subscription, error) {
	var items []subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		activeSubscriptionsQuery+`
	FOR UPDATE`,
		sellerID,
		subscriptiondomain.SubscriptionStatusActive,
		now,
		now,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) IncrementUsed(ctx context.Context, db *gorm.DB, id snowflake.ID, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET used_listing_quota = used_listing_quota + 1, updated_at = ?
		 WHERE id = ? AND used_listing_quota < included_listing_quota`,
		now,
		id,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status subscriptiondomain.SubscriptionStatus, now time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		now,
		id,
	).Error
}

func (r *repo) ListBySeller(ctx context.Context, db *gorm.DB, sellerID string) ([]subscriptiondomain.Subscription, error) {
	var items []subscriptiondomain.Subscription
	err := db.WithContext(ctx).
		Model(&subscriptiondomain.Subscription{}).
		Where("seller_id = ?", sellerID).
		Order("end_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
