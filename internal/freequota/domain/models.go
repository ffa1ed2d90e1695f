package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FreeQuotaConfig grants QuotaAmount free listings per seller inside a
// rolling window of PeriodDays, counted back from the pricing instant.
type FreeQuotaConfig struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Country     string       `json:"country" gorm:"type:char(2);not null;uniqueIndex:ux_free_quota_configs_scope,priority:1"`
	Segment     string       `json:"segment" gorm:"type:text;not null;uniqueIndex:ux_free_quota_configs_scope,priority:2"`
	QuotaAmount int32        `json:"quota_amount" gorm:"not null"`
	PeriodDays  int32        `json:"period_days" gorm:"not null"`
	Active      bool         `json:"active" gorm:"not null"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null"`
}

func (FreeQuotaConfig) TableName() string { return "free_quota_configs" }

// WindowStart is the exclusive lower bound of the rolling window.
func (c *FreeQuotaConfig) WindowStart(now time.Time) time.Time {
	return now.Add(-time.Duration(c.PeriodDays) * 24 * time.Hour)
}

// Eligibility is the outcome of a free quota check.
type Eligibility struct {
	Eligible bool
	Config   *FreeQuotaConfig
	Used     int64
}

func (e Eligibility) Remaining() int64 {
	if e.Config == nil {
		return 0
	}
	remaining := int64(e.Config.QuotaAmount) - e.Used
	if remaining < 0 {
		return 0
	}
	return remaining
}
