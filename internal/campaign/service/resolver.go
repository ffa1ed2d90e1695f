package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	"github.com/smallbiznis/classifieds/internal/config"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	"github.com/smallbiznis/classifieds/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResolverParams struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    campaigndomain.Repository
	Pricing *config.PricingConfigHolder
}

type resolver struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    campaigndomain.Repository
	pricing *config.PricingConfigHolder
}

func NewResolver(p ResolverParams) campaigndomain.Resolver {
	return &resolver{
		db:      p.DB,
		log:     p.Log.Named("campaign.resolver"),
		repo:    p.Repo,
		pricing: p.Pricing,
	}
}

// Apply walks running campaigns in priority order and uses the first one whose
// discount fits the quote. Campaigns with a malformed discount or a fixed
// amount in another currency are skipped.
func (r *resolver) Apply(ctx context.Context, country string, quote campaigndomain.Quote, now time.Time) (campaigndomain.Quote, *campaigndomain.AppliedDiscount) {
	if !quote.Charge.IsPositive() {
		return quote, nil
	}

	cfg := r.pricing.Get()
	candidates, err := r.repo.ListApplicable(ctx, r.db, campaigndomain.ApplicableFilter{
		Type:    cfg.CampaignType,
		Target:  cfg.CampaignTarget,
		Country: country,
		Now:     now,
	})
	if err != nil {
		r.log.Warn("campaign lookup failed, pricing without discount",
			zap.String("country", country),
			zap.Error(err),
		)
		return quote, nil
	}

	for i := range candidates {
		c := &candidates[i]
		discount, err := c.Discount()
		if err != nil {
			r.log.Warn("skipping campaign with invalid discount",
				zap.String("campaign_id", c.ID.String()),
				zap.Error(err),
			)
			continue
		}

		off, ok := campaigndomain.Reduction(discount, quote.Charge, quote.Currency)
		if !ok {
			continue
		}

		charge := money.NonNegative(quote.Charge.Sub(off))
		tax := vatdomain.ComputeTax(charge, quote.VatRate)
		discounted := campaigndomain.Quote{
			Charge:   charge,
			Currency: quote.Currency,
			VatRate:  quote.VatRate,
			Tax:      tax,
			Gross:    charge.Add(tax),
		}

		applied := &campaigndomain.AppliedDiscount{
			CampaignID:   c.ID,
			CampaignName: c.Name,
			Kind:         discount.Kind(),
			Amount:       quote.Charge.Sub(charge),
		}
		if pct, ok := discount.(campaigndomain.PercentageDiscount); ok {
			applied.Percent = decimal.NullDecimal{Decimal: pct.Percent, Valid: true}
		}
		return discounted, applied
	}

	return quote, nil
}
