package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo consumptiondomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo consumptiondomain.Repository
}

func New(p Params) consumptiondomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("consumption.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByListing(ctx context.Context, listingID string) (*consumptiondomain.ConsumptionLog, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, consumptiondomain.ErrInvalidListing
	}

	row, err := s.repo.FindByListing(ctx, s.db, listingID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, consumptiondomain.ErrNotFound
	}
	return row, nil
}

func (s *Service) ListBySeller(ctx context.Context, req consumptiondomain.ListRequest) (consumptiondomain.ListResponse, error) {
	sellerID := strings.TrimSpace(req.SellerID)
	if sellerID == "" {
		return consumptiondomain.ListResponse{}, consumptiondomain.ErrInvalidSeller
	}

	filter := consumptiondomain.ListFilter{
		SellerID: sellerID,
		Limit:    pageSize(req.PageSize),
	}
	if source := strings.TrimSpace(req.Source); source != "" {
		filter.Source = consumptiondomain.Source(strings.ToLower(source))
		if !filter.Source.Valid() {
			return consumptiondomain.ListResponse{}, consumptiondomain.ErrInvalidSource
		}
	}
	if token := strings.TrimSpace(req.PageToken); token != "" {
		before, err := snowflake.ParseString(token)
		if err != nil {
			return consumptiondomain.ListResponse{}, consumptiondomain.ErrInvalidPageToken
		}
		filter.BeforeID = before
	}

	// Fetch one extra row to know whether another page exists.
	limit := filter.Limit
	filter.Limit = limit + 1
	items, err := s.repo.ListBySeller(ctx, s.db, filter)
	if err != nil {
		return consumptiondomain.ListResponse{}, err
	}

	resp := consumptiondomain.ListResponse{Items: items}
	if len(items) > limit {
		resp.Items = items[:limit]
		resp.NextPageToken = resp.Items[limit-1].ID.String()
	}
	if resp.Items == nil {
		resp.Items = []consumptiondomain.ConsumptionLog{}
	}
	return resp, nil
}

func pageSize(value int) int {
	switch {
	case value <= 0:
		return defaultPageSize
	case value > maxPageSize:
		return maxPageSize
	default:
		return value
	}
}
