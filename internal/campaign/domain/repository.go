package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ApplicableFilter selects running campaigns for a pricing request.
type ApplicableFilter struct {
	Type    string
	Target  string
	Country string
	Now     time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Campaign, error)
	// ListApplicable orders by priority then most recently updated.
	ListApplicable(ctx context.Context, db *gorm.DB, filter ApplicableFilter) ([]Campaign, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status CampaignStatus, now time.Time) error
	List(ctx context.Context, db *gorm.DB, status CampaignStatus) ([]Campaign, error)
}
