package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	// ListActive orders by end_at then id so selection is deterministic.
	ListActive(ctx context.Context, db *gorm.DB, sellerID string, now time.Time) ([]Subscription, error)
	ListActiveForUpdate(ctx context.Context, db *gorm.DB, sellerID string, now time.Time) ([]Subscription, error)
	// IncrementUsed returns the number of rows updated; zero means the
	// package was already full.
	IncrementUsed(ctx context.Context, db *gorm.DB, id snowflake.ID, now time.Time) (int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status SubscriptionStatus, now time.Time) error
	ListBySeller(ctx context.Context, db *gorm.DB, sellerID string) ([]Subscription, error)
}
