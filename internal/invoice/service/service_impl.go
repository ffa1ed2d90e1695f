package service

import (
	"context"
	"strings"

	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Repo invoicedomain.Repository
}

type Service struct {
	db   *gorm.DB
	repo invoicedomain.Repository
}

func NewService(p Params) invoicedomain.Service {
	return &Service{db: p.DB, repo: p.Repo}
}

func (s *Service) ListLines(ctx context.Context, invoiceID string) ([]invoicedomain.InvoiceLine, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, invoicedomain.ErrInvalidInvoice
	}
	items, err := s.repo.ListByInvoice(ctx, s.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []invoicedomain.InvoiceLine{}
	}
	return items, nil
}
