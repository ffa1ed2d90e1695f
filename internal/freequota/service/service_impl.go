package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/classifieds/internal/clock"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	"github.com/smallbiznis/classifieds/pkg/country"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  freequotadomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  freequotadomain.Repository
}

func New(p Params) freequotadomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("freequota.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Upsert keeps one config per (country, segment). Deactivating is done by
// sending active=false; rows are never deleted so old consumption keeps its reference.
func (s *Service) Upsert(ctx context.Context, req freequotadomain.UpsertRequest) (*freequotadomain.FreeQuotaConfig, error) {
	code, err := country.Normalize(req.Country)
	if err != nil {
		return nil, freequotadomain.ErrInvalidCountry
	}
	segment := strings.ToLower(strings.TrimSpace(req.Segment))
	if segment == "" {
		return nil, freequotadomain.ErrInvalidSegment
	}
	if req.QuotaAmount < 0 {
		return nil, freequotadomain.ErrInvalidQuotaAmount
	}
	if req.PeriodDays <= 0 {
		return nil, freequotadomain.ErrInvalidPeriodDays
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now().UTC()
	var entity *freequotadomain.FreeQuotaConfig
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByScope(ctx, tx, code, segment)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.QuotaAmount = req.QuotaAmount
			existing.PeriodDays = req.PeriodDays
			existing.Active = active
			existing.UpdatedAt = now
			entity = existing
			return s.repo.Update(ctx, tx, existing)
		}

		entity = &freequotadomain.FreeQuotaConfig{
			ID:          s.genID.Generate(),
			Country:     code,
			Segment:     segment,
			QuotaAmount: req.QuotaAmount,
			PeriodDays:  req.PeriodDays,
			Active:      active,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return s.repo.Insert(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("free quota config saved",
		zap.String("country", entity.Country),
		zap.String("segment", entity.Segment),
		zap.Int32("quota_amount", entity.QuotaAmount),
		zap.Int32("period_days", entity.PeriodDays),
		zap.Bool("active", entity.Active),
	)
	return entity, nil
}

func (s *Service) List(ctx context.Context, countryCode string) ([]freequotadomain.FreeQuotaConfig, error) {
	code := ""
	if strings.TrimSpace(countryCode) != "" {
		normalized, err := country.Normalize(countryCode)
		if err != nil {
			return nil, freequotadomain.ErrInvalidCountry
		}
		code = normalized
	}
	return s.repo.List(ctx, s.db, code)
}
