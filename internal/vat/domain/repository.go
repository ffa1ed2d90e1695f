package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rate *VatRate) error
	FindActive(ctx context.Context, db *gorm.DB, country string, at time.Time) (*VatRate, error)
	List(ctx context.Context, db *gorm.DB, country string) ([]VatRate, error)
}
