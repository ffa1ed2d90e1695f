package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindActive(ctx context.Context, db *gorm.DB, country, segment string) (*FreeQuotaConfig, error)
	// FindActiveForUpdate locks the config row; commits that consume free
	// quota for the same scope serialize on it.
	FindActiveForUpdate(ctx context.Context, db *gorm.DB, country, segment string) (*FreeQuotaConfig, error)
	FindByScope(ctx context.Context, db *gorm.DB, country, segment string) (*FreeQuotaConfig, error)
	Insert(ctx context.Context, db *gorm.DB, cfg *FreeQuotaConfig) error
	Update(ctx context.Context, db *gorm.DB, cfg *FreeQuotaConfig) error
	List(ctx context.Context, db *gorm.DB, country string) ([]FreeQuotaConfig, error)
}
