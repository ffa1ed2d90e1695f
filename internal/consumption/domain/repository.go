package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ExistsForListing(ctx context.Context, db *gorm.DB, listingID string) (bool, error)
	FindByListing(ctx context.Context, db *gorm.DB, listingID string) (*ConsumptionLog, error)
	// CountBySourceSince counts rows strictly newer than since.
	CountBySourceSince(ctx context.Context, db *gorm.DB, sellerID, country string, source Source, since time.Time) (int64, error)
	Insert(ctx context.Context, db *gorm.DB, log *ConsumptionLog) error
	ListBySeller(ctx context.Context, db *gorm.DB, filter ListFilter) ([]ConsumptionLog, error)
}

// ListFilter pages newest first; BeforeID is the last id of the previous page.
type ListFilter struct {
	SellerID string
	Source   Source
	BeforeID snowflake.ID
	Limit    int
}
