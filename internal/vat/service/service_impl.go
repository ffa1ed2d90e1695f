package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/classifieds/internal/clock"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
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
	Repo  vatdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  vatdomain.Repository
}

func New(p Params) vatdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("vat.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Resolve fails with ErrNotConfigured when the country has no rate covering at.
func (s *Service) Resolve(ctx context.Context, countryCode string, at time.Time) (*vatdomain.VatRate, error) {
	code, err := country.Normalize(countryCode)
	if err != nil {
		return nil, vatdomain.ErrInvalidCountry
	}

	rate, err := s.repo.FindActive(ctx, s.db, code, at.UTC())
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, vatdomain.ErrNotConfigured
	}
	return rate, nil
}

func (s *Service) Create(ctx context.Context, req vatdomain.CreateRequest) (*vatdomain.VatRate, error) {
	code, err := country.Normalize(req.Country)
	if err != nil {
		return nil, vatdomain.ErrInvalidCountry
	}

	now := s.clock.Now().UTC()
	entity := &vatdomain.VatRate{
		ID:        s.genID.Generate(),
		Country:   code,
		Rate:      req.Rate.Round(2),
		ValidFrom: req.ValidFrom.UTC(),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ValidTo != nil {
		validTo := req.ValidTo.UTC()
		entity.ValidTo = &validTo
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("vat rate created",
		zap.String("country", entity.Country),
		zap.String("rate", entity.Rate.String()),
		zap.Time("valid_from", entity.ValidFrom),
	)
	return entity, nil
}

func (s *Service) List(ctx context.Context, countryCode string) ([]vatdomain.VatRate, error) {
	code := ""
	if countryCode != "" {
		normalized, err := country.Normalize(countryCode)
		if err != nil {
			return nil, vatdomain.ErrInvalidCountry
		}
		code = normalized
	}
	return s.repo.List(ctx, s.db, code)
}
