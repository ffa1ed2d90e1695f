package service

import (
	"context"
	"time"

	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type EvaluatorParams struct {
	fx.In

	Repo            freequotadomain.Repository
	ConsumptionRepo consumptiondomain.Repository
}

type evaluator struct {
	repo            freequotadomain.Repository
	consumptionRepo consumptiondomain.Repository
}

func NewEvaluator(p EvaluatorParams) freequotadomain.Evaluator {
	return &evaluator{
		repo:            p.Repo,
		consumptionRepo: p.ConsumptionRepo,
	}
}

// Eligible reports not eligible, without error, when the scope has no active config.
func (e *evaluator) Eligible(ctx context.Context, db *gorm.DB, sellerID, country, segment string, now time.Time) (freequotadomain.Eligibility, error) {
	cfg, err := e.repo.FindActive(ctx, db, country, segment)
	if err != nil {
		return freequotadomain.Eligibility{}, err
	}
	return e.evaluate(ctx, db, cfg, sellerID, country, now)
}

func (e *evaluator) EligibleForUpdate(ctx context.Context, tx *gorm.DB, sellerID, country, segment string, now time.Time) (freequotadomain.Eligibility, error) {
	cfg, err := e.repo.FindActiveForUpdate(ctx, tx, country, segment)
	if err != nil {
		return freequotadomain.Eligibility{}, err
	}
	return e.evaluate(ctx, tx, cfg, sellerID, country, now)
}

func (e *evaluator) evaluate(ctx context.Context, db *gorm.DB, cfg *freequotadomain.FreeQuotaConfig, sellerID, country string, now time.Time) (freequotadomain.Eligibility, error) {
	if cfg == nil || cfg.QuotaAmount <= 0 || cfg.PeriodDays <= 0 {
		return freequotadomain.Eligibility{Config: cfg}, nil
	}

	used, err := e.consumptionRepo.CountBySourceSince(ctx, db, sellerID, country, consumptiondomain.SourceFreeQuota, cfg.WindowStart(now))
	if err != nil {
		return freequotadomain.Eligibility{}, err
	}

	return freequotadomain.Eligibility{
		Eligible: used < int64(cfg.QuotaAmount),
		Config:   cfg,
		Used:     used,
	}, nil
}
