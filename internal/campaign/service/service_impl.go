package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	"github.com/smallbiznis/classifieds/internal/clock"
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
	Repo  campaigndomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  campaigndomain.Repository
}

func New(p Params) campaigndomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("campaign.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req campaigndomain.CreateRequest) (*campaigndomain.Campaign, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, campaigndomain.ErrInvalidName
	}
	campaignType := strings.ToLower(strings.TrimSpace(req.Type))
	if campaignType == "" {
		return nil, campaigndomain.ErrInvalidType
	}
	target := strings.ToLower(strings.TrimSpace(req.Target))
	if target == "" {
		return nil, campaigndomain.ErrInvalidTarget
	}
	status := campaigndomain.CampaignStatusDraft
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status = campaigndomain.CampaignStatus(strings.ToLower(raw))
		if !status.Valid() {
			return nil, campaigndomain.ErrInvalidStatus
		}
	}
	if req.StartAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, campaigndomain.ErrInvalidPeriod
	}

	now := s.clock.Now().UTC()
	entity := &campaigndomain.Campaign{
		ID:              s.genID.Generate(),
		Name:            name,
		Type:            campaignType,
		Status:          status,
		Target:          target,
		Scope:           campaigndomain.CampaignScopeGlobal,
		Priority:        req.Priority,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		StartAt:         req.StartAt.UTC(),
		EndAt:           req.EndAt.UTC(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.Country != nil && strings.TrimSpace(*req.Country) != "" {
		code, err := country.Normalize(*req.Country)
		if err != nil {
			return nil, campaigndomain.ErrInvalidCountry
		}
		entity.Scope = campaigndomain.CampaignScopeCountry
		entity.Country = &code
	}
	if req.DiscountAmount.Valid {
		if req.DiscountCurrency == nil {
			return nil, campaigndomain.ErrInvalidCurrency
		}
		currency, err := money.NormalizeCurrency(*req.DiscountCurrency)
		if err != nil {
			return nil, campaigndomain.ErrInvalidCurrency
		}
		entity.DiscountCurrency = &currency
		entity.DiscountAmount.Decimal = money.Round(req.DiscountAmount.Decimal)
	}
	if req.DiscountPercent.Valid {
		entity.DiscountPercent.Decimal = money.Round(req.DiscountPercent.Decimal)
	}
	if _, err := entity.Discount(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("campaign created",
		zap.String("campaign_id", entity.ID.String()),
		zap.String("scope", string(entity.Scope)),
		zap.Int32("priority", entity.Priority),
	)
	return entity, nil
}

func (s *Service) List(ctx context.Context, status string) ([]campaigndomain.Campaign, error) {
	filter := campaigndomain.CampaignStatus(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return nil, campaigndomain.ErrInvalidStatus
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) SetStatus(ctx context.Context, id string, status string) (*campaigndomain.Campaign, error) {
	campaignID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || campaignID == 0 {
		return nil, campaigndomain.ErrInvalidID
	}
	next := campaigndomain.CampaignStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, campaigndomain.ErrInvalidStatus
	}

	var entity *campaigndomain.Campaign
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if current == nil {
			return campaigndomain.ErrNotFound
		}
		now := s.clock.Now().UTC()
		if err := s.repo.UpdateStatus(ctx, tx, campaignID, next, now); err != nil {
			return err
		}
		current.Status = next
		current.UpdatedAt = now
		entity = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}
