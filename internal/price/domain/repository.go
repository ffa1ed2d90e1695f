package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cfg *PriceConfig) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceConfig, error)
	FindActive(ctx context.Context, db *gorm.DB, country, segment string, pricingType PricingType) (*PriceConfig, error)
	MaxVersion(ctx context.Context, db *gorm.DB, country, segment string, pricingType PricingType) (int32, error)
	DeactivateAll(ctx context.Context, db *gorm.DB, country, segment string, pricingType PricingType) error
	List(ctx context.Context, db *gorm.DB, country string) ([]PriceConfig, error)
}
