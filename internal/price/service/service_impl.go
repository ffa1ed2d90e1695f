package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/classifieds/internal/clock"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	"github.com/smallbiznis/classifieds/pkg/country"
	"github.com/smallbiznis/classifieds/pkg/money"
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
	Repo  pricedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  pricedomain.Repository
}

func New(p Params) pricedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("price.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) ResolveActive(ctx context.Context, countryCode, segment string, pricingType pricedomain.PricingType) (*pricedomain.PriceConfig, error) {
	cfg, err := s.repo.FindActive(ctx, s.db, strings.ToUpper(strings.TrimSpace(countryCode)), normalizeSegment(segment), pricingType)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, pricedomain.ErrNotConfigured
	}
	return cfg, nil
}

// Publish stores a new version and retires the previous ones. Older rows stay
// readable by id so committed consumption keeps pointing at the price it paid.
func (s *Service) Publish(ctx context.Context, req pricedomain.PublishRequest) (*pricedomain.PriceConfig, error) {
	code, err := country.Normalize(req.Country)
	if err != nil {
		return nil, pricedomain.ErrInvalidCountry
	}
	segment := normalizeSegment(req.Segment)
	if segment == "" {
		return nil, pricedomain.ErrInvalidSegment
	}
	pricingType, err := pricedomain.ParsePricingType(req.PricingType)
	if err != nil {
		return nil, err
	}
	if req.UnitPriceNet.IsNegative() {
		return nil, pricedomain.ErrInvalidUnitPrice
	}
	currency, err := money.NormalizeCurrency(req.Currency)
	if err != nil {
		return nil, pricedomain.ErrInvalidCurrency
	}

	var entity *pricedomain.PriceConfig
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.MaxVersion(ctx, tx, code, segment, pricingType)
		if err != nil {
			return err
		}
		if err := s.repo.DeactivateAll(ctx, tx, code, segment, pricingType); err != nil {
			return err
		}

		entity = &pricedomain.PriceConfig{
			ID:           s.genID.Generate(),
			Country:      code,
			Segment:      segment,
			PricingType:  pricingType,
			Version:      current + 1,
			UnitPriceNet: money.Round(req.UnitPriceNet),
			Currency:     currency,
			Active:       true,
			CreatedAt:    s.clock.Now().UTC(),
		}
		return s.repo.Insert(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("price config published",
		zap.String("country", entity.Country),
		zap.String("segment", entity.Segment),
		zap.String("pricing_type", string(entity.PricingType)),
		zap.Int32("version", entity.Version),
	)
	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*pricedomain.PriceConfig, error) {
	configID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, pricedomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, configID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, pricedomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, countryCode string) ([]pricedomain.PriceConfig, error) {
	code := ""
	if strings.TrimSpace(countryCode) != "" {
		normalized, err := country.Normalize(countryCode)
		if err != nil {
			return nil, pricedomain.ErrInvalidCountry
		}
		code = normalized
	}
	return s.repo.List(ctx, s.db, code)
}

func normalizeSegment(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
