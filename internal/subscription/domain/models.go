// Package domain contains listing packages sold to sellers. A package
// covers a fixed number of listings during its validity window.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SubscriptionStatus represents lifecycle states for a listing package.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
)

// Subscription tracks quota consumption for one seller package.
// UsedListingQuota only grows and is written under the row lock at commit time.
type Subscription struct {
	ID                   snowflake.ID       `json:"id" gorm:"primaryKey"`
	SellerID             string             `json:"seller_id" gorm:"type:text;not null;index:ix_subscriptions_seller_status,priority:1"`
	PackageCode          string             `json:"package_code" gorm:"type:text;not null"`
	Status               SubscriptionStatus `json:"status" gorm:"type:text;not null;index:ix_subscriptions_seller_status,priority:2"`
	StartAt              time.Time          `json:"start_at" gorm:"not null"`
	EndAt                time.Time          `json:"end_at" gorm:"not null"`
	IncludedListingQuota int32              `json:"included_listing_quota" gorm:"not null"`
	UsedListingQuota     int32              `json:"used_listing_quota" gorm:"not null"`
	CreatedAt            time.Time          `json:"created_at" gorm:"not null"`
	UpdatedAt            time.Time          `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) Remaining() int32 {
	remaining := s.IncludedListingQuota - s.UsedListingQuota
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ActiveAt mirrors the repository filter for callers holding a loaded row.
func (s *Subscription) ActiveAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && !s.StartAt.After(now) && s.EndAt.After(now)
}

// PickWithRemaining returns the first subscription with spare quota. Callers
// pass rows in repository order, so the soonest-expiring package is used first.
func PickWithRemaining(items []Subscription) *Subscription {
	for i := range items {
		if items[i].Remaining() > 0 {
			return &items[i]
		}
	}
	return nil
}
