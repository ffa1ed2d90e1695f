package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	"github.com/smallbiznis/classifieds/internal/clock"
	"github.com/smallbiznis/classifieds/internal/config"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
	obslogger "github.com/smallbiznis/classifieds/internal/observability/logger"
	"github.com/smallbiznis/classifieds/internal/observability/metrics"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	subscriptiondomain "github.com/smallbiznis/classifieds/internal/subscription/domain"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	"github.com/smallbiznis/classifieds/pkg/country"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("classifieds/monetization")

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Pricing *config.PricingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`

	VatRates         vatdomain.Resolver
	Prices           pricedomain.Resolver
	FreeQuota        freequotadomain.Evaluator
	Campaigns        campaigndomain.Resolver
	SubscriptionRepo subscriptiondomain.Repository
	ConsumptionRepo  consumptiondomain.Repository
	InvoiceRepo      invoicedomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	pricing *config.PricingConfigHolder
	metrics *metrics.Metrics

	vatRates         vatdomain.Resolver
	prices           pricedomain.Resolver
	freeQuota        freequotadomain.Evaluator
	campaigns        campaigndomain.Resolver
	subscriptionRepo subscriptiondomain.Repository
	consumptionRepo  consumptiondomain.Repository
	invoiceRepo      invoicedomain.Repository
}

func New(p Params) monetizationdomain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("monetization.service"),
		genID:            p.GenID,
		clock:            p.Clock,
		pricing:          p.Pricing,
		metrics:          p.Metrics,
		vatRates:         p.VatRates,
		prices:           p.Prices,
		freeQuota:        p.FreeQuota,
		campaigns:        p.Campaigns,
		subscriptionRepo: p.SubscriptionRepo,
		consumptionRepo:  p.ConsumptionRepo,
		invoiceRepo:      p.InvoiceRepo,
	}
}

// Evaluate runs the waterfall: free quota, then subscription quota, then the
// paid price with the best campaign discount. The first tier that matches wins.
func (s *Service) Evaluate(ctx context.Context, req monetizationdomain.EvaluateRequest) (*monetizationdomain.Decision, error) {
	ctx, span := tracer.Start(ctx, "monetization.Evaluate")
	defer span.End()

	in, err := s.normalizeEvaluate(req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("country", in.Country),
		attribute.String("segment", in.Segment),
		attribute.String("pricing_type", string(in.PricingType)),
	)

	log := obslogger.WithListing(obslogger.WithContext(ctx, s.log), in.ListingID, in.SellerID)
	now := s.clock.Now().UTC()

	decision, err := s.evaluate(ctx, in, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, monetizationdomain.ErrConfigurationMissing) {
			log.Error("pricing configuration missing", zap.String("country", in.Country), zap.Error(err))
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("outcome", string(decision.Outcome)))
	s.metrics.RecordDecision(ctx, decision.Country, string(decision.Outcome))
	if decision.AppliedDiscount != nil {
		s.metrics.RecordDiscount(ctx, decision.Country, string(decision.AppliedDiscount.Kind))
	}
	log.Debug("pricing evaluated",
		zap.String("outcome", string(decision.Outcome)),
		zap.String("charge_amount", decision.ChargeAmount.StringFixed(2)),
		zap.String("gross_amount", decision.GrossAmount.StringFixed(2)),
	)
	return decision, nil
}

type evaluateInput struct {
	SellerID    string
	ListingID   string
	Country     string
	Segment     string
	PricingType pricedomain.PricingType
}

func (s *Service) normalizeEvaluate(req monetizationdomain.EvaluateRequest) (evaluateInput, error) {
	in := evaluateInput{
		SellerID:  strings.TrimSpace(req.SellerID),
		ListingID: strings.TrimSpace(req.ListingID),
		Segment:   strings.ToLower(strings.TrimSpace(req.Segment)),
	}
	if in.SellerID == "" {
		return evaluateInput{}, monetizationdomain.ErrInvalidSeller
	}
	if in.ListingID == "" {
		return evaluateInput{}, monetizationdomain.ErrInvalidListing
	}
	code, err := country.Normalize(req.Country)
	if err != nil {
		return evaluateInput{}, monetizationdomain.ErrInvalidCountry
	}
	in.Country = code

	pricingType, err := pricedomain.ParsePricingType(req.PricingType)
	if err != nil {
		return evaluateInput{}, monetizationdomain.ErrInvalidPricingType
	}
	in.PricingType = pricingType

	if in.Segment == "" {
		in.Segment = strings.ToLower(s.pricing.Get().DealerSegment)
	}
	return in, nil
}

func (s *Service) evaluate(ctx context.Context, in evaluateInput, now time.Time) (*monetizationdomain.Decision, error) {
	// Fast path only; Commit checks again inside its transaction.
	consumed, err := s.consumptionRepo.ExistsForListing(ctx, s.db, in.ListingID)
	if err != nil {
		return nil, err
	}
	if consumed {
		return nil, fmt.Errorf("%w: listing %s", monetizationdomain.ErrAlreadyConsumed, in.ListingID)
	}

	vat, err := s.vatRates.Resolve(ctx, in.Country, now)
	if err != nil {
		if errors.Is(err, vatdomain.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %w for %s", monetizationdomain.ErrConfigurationMissing, err, in.Country)
		}
		return nil, err
	}

	decision := &monetizationdomain.Decision{
		BaseUnitPrice:  decimal.Zero,
		DiscountAmount: decimal.Zero,
		ChargeAmount:   decimal.Zero,
		TaxAmount:      decimal.Zero,
		GrossAmount:    decimal.Zero,
		VatRate:        vat.Rate,
		VatRateID:      vat.ID,
		ListingID:      in.ListingID,
		SellerID:       in.SellerID,
		Country:        in.Country,
		Segment:        in.Segment,
		PricingType:    string(in.PricingType),
		EvaluatedAt:    now,
	}

	free, err := s.freeQuota.Eligible(ctx, s.db, in.SellerID, in.Country, in.Segment, now)
	if err != nil {
		return nil, err
	}
	if free.Eligible {
		decision.Outcome = monetizationdomain.OutcomeFree
		decision.Source = consumptiondomain.SourceFreeQuota
		decision.IsFree = true
		decision.FreeQuotaConfigID = &free.Config.ID
		return decision, nil
	}

	subscriptions, err := s.subscriptionRepo.ListActive(ctx, s.db, in.SellerID, now)
	if err != nil {
		return nil, err
	}
	if sub := subscriptiondomain.PickWithRemaining(subscriptions); sub != nil {
		decision.Outcome = monetizationdomain.OutcomeSubscription
		decision.Source = consumptiondomain.SourceSubscriptionQuota
		decision.IsCoveredByPackage = true
		decision.SubscriptionID = &sub.ID
		return decision, nil
	}

	price, err := s.prices.ResolveActive(ctx, in.Country, in.Segment, in.PricingType)
	if err != nil {
		if errors.Is(err, pricedomain.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %w for %s/%s/%s", monetizationdomain.ErrConfigurationMissing, err, in.Country, in.Segment, in.PricingType)
		}
		return nil, err
	}

	charge := price.UnitPriceNet
	tax := vatdomain.ComputeTax(charge, vat.Rate)
	quote, applied := s.campaigns.Apply(ctx, in.Country, campaigndomain.Quote{
		Charge:   charge,
		Currency: price.Currency,
		VatRate:  vat.Rate,
		Tax:      tax,
		Gross:    charge.Add(tax),
	}, now)

	decision.Outcome = monetizationdomain.OutcomePaid
	decision.Source = consumptiondomain.SourcePaidExtra
	decision.BaseUnitPrice = price.UnitPriceNet
	decision.Currency = price.Currency
	decision.PriceConfigID = &price.ID
	decision.PriceConfigVersion = &price.Version
	decision.ChargeAmount = quote.Charge
	decision.TaxAmount = quote.Tax
	decision.GrossAmount = quote.Gross
	if applied != nil {
		decision.Outcome = monetizationdomain.OutcomePaidDiscounted
		decision.AppliedDiscount = applied
		decision.DiscountAmount = applied.Amount
	}
	return decision, nil
}
