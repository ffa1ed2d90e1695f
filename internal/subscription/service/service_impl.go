package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/classifieds/internal/clock"
	subscriptiondomain "github.com/smallbiznis/classifieds/internal/subscription/domain"
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
	Repo  subscriptiondomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  subscriptiondomain.Repository
}

func NewService(p Params) subscriptiondomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("subscription.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req subscriptiondomain.CreateSubscriptionRequest) (*subscriptiondomain.Subscription, error) {
	sellerID := strings.TrimSpace(req.SellerID)
	if sellerID == "" {
		return nil, subscriptiondomain.ErrInvalidSeller
	}
	packageCode := strings.TrimSpace(req.PackageCode)
	if packageCode == "" {
		return nil, subscriptiondomain.ErrInvalidPackage
	}
	if req.StartAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, subscriptiondomain.ErrInvalidPeriod
	}
	if req.IncludedListingQuota <= 0 {
		return nil, subscriptiondomain.ErrInvalidQuota
	}

	now := s.clock.Now().UTC()
	entity := &subscriptiondomain.Subscription{
		ID:                   s.genID.Generate(),
		SellerID:             sellerID,
		PackageCode:          packageCode,
		Status:               subscriptiondomain.SubscriptionStatusActive,
		StartAt:              req.StartAt.UTC(),
		EndAt:                req.EndAt.UTC(),
		IncludedListingQuota: req.IncludedListingQuota,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("subscription created",
		zap.String("subscription_id", entity.ID.String()),
		zap.String("seller_id", entity.SellerID),
		zap.Int32("included_listing_quota", entity.IncludedListingQuota),
		zap.Time("end_at", entity.EndAt),
	)
	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	subscriptionID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindByID(ctx, s.db, subscriptionID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, subscriptiondomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) ListBySeller(ctx context.Context, sellerID string) ([]subscriptiondomain.Subscription, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, subscriptiondomain.ErrInvalidSeller
	}
	return s.repo.ListBySeller(ctx, s.db, sellerID)
}

// Cancel stops a package from covering new listings. Quota already used stays recorded.
func (s *Service) Cancel(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	subscriptionID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var entity *subscriptiondomain.Subscription
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, subscriptionID)
		if err != nil {
			return err
		}
		if current == nil {
			return subscriptiondomain.ErrNotFound
		}
		if current.Status != subscriptiondomain.SubscriptionStatusActive {
			return subscriptiondomain.ErrInvalidTransition
		}

		now := s.clock.Now().UTC()
		if err := s.repo.UpdateStatus(ctx, tx, current.ID, subscriptiondomain.SubscriptionStatusCanceled, now); err != nil {
			return err
		}
		current.Status = subscriptiondomain.SubscriptionStatusCanceled
		current.UpdatedAt = now
		entity = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("subscription canceled", zap.String("subscription_id", entity.ID.String()))
	return entity, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, subscriptiondomain.ErrInvalidID
	}
	return id, nil
}
