package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	campaignrepo "github.com/smallbiznis/classifieds/internal/campaign/repository"
	campaignservice "github.com/smallbiznis/classifieds/internal/campaign/service"
	"github.com/smallbiznis/classifieds/internal/clock"
	"github.com/smallbiznis/classifieds/internal/config"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	consumptionrepo "github.com/smallbiznis/classifieds/internal/consumption/repository"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	freequotarepo "github.com/smallbiznis/classifieds/internal/freequota/repository"
	freequotaservice "github.com/smallbiznis/classifieds/internal/freequota/service"
	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/classifieds/internal/invoice/repository"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	pricerepo "github.com/smallbiznis/classifieds/internal/price/repository"
	priceservice "github.com/smallbiznis/classifieds/internal/price/service"
	subscriptiondomain "github.com/smallbiznis/classifieds/internal/subscription/domain"
	subscriptionrepo "github.com/smallbiznis/classifieds/internal/subscription/repository"
	subscriptionservice "github.com/smallbiznis/classifieds/internal/subscription/service"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	vatrepo "github.com/smallbiznis/classifieds/internal/vat/repository"
	vatservice "github.com/smallbiznis/classifieds/internal/vat/service"
	"github.com/smallbiznis/classifieds/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db    *gorm.DB
	clock *clock.FakeClock
	svc   monetizationdomain.Service

	vat           vatdomain.Service
	prices        pricedomain.Service
	freeQuota     freequotadomain.Service
	subscriptions subscriptiondomain.Service
	campaigns     campaigndomain.Service

	subscriptionRepo subscriptiondomain.Repository
	consumptionRepo  consumptiondomain.Repository
	invoiceRepo      invoicedomain.Repository
}

type fixtureOption func(*Params)

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	db := dbtest.Open(t,
		&vatdomain.VatRate{},
		&pricedomain.PriceConfig{},
		&freequotadomain.FreeQuotaConfig{},
		&subscriptiondomain.Subscription{},
		&campaigndomain.Campaign{},
		&consumptiondomain.ConsumptionLog{},
		&invoicedomain.InvoiceLine{},
	)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(testNow)
	log := zap.NewNop()
	pricing := config.NewStaticPricingConfig(config.DefaultPricingConfig())

	vatRepo := vatrepo.Provide()
	priceRepo := pricerepo.Provide()
	quotaRepo := freequotarepo.Provide()
	subRepo := subscriptionrepo.Provide()
	campRepo := campaignrepo.Provide()
	consRepo := consumptionrepo.Provide()
	invRepo := invoicerepo.Provide()

	f := &fixture{
		db:               db,
		clock:            fake,
		vat:              vatservice.New(vatservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: vatRepo}),
		prices:           priceservice.New(priceservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: priceRepo}),
		freeQuota:        freequotaservice.New(freequotaservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: quotaRepo}),
		subscriptions:    subscriptionservice.NewService(subscriptionservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: subRepo}),
		campaigns:        campaignservice.New(campaignservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: campRepo}),
		subscriptionRepo: subRepo,
		consumptionRepo:  consRepo,
		invoiceRepo:      invRepo,
	}

	p := Params{
		DB:               db,
		Log:              log,
		GenID:            node,
		Clock:            fake,
		Pricing:          pricing,
		VatRates:         f.vat,
		Prices:           f.prices,
		FreeQuota:        freequotaservice.NewEvaluator(freequotaservice.EvaluatorParams{Repo: quotaRepo, ConsumptionRepo: consRepo}),
		Campaigns:        campaignservice.NewResolver(campaignservice.ResolverParams{DB: db, Log: log, Repo: campRepo, Pricing: pricing}),
		SubscriptionRepo: subRepo,
		ConsumptionRepo:  consRepo,
		InvoiceRepo:      invRepo,
	}
	for _, opt := range opts {
		opt(&p)
	}
	f.svc = New(p)
	return f
}

func (f *fixture) seedVat(t *testing.T, country string) {
	t.Helper()
	_, err := f.vat.Create(context.Background(), vatdomain.CreateRequest{
		Country:   country,
		Rate:      decimal.NewFromInt(19),
		ValidFrom: testNow.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)
}

func (f *fixture) seedPrice(t *testing.T, country, amount string) {
	t.Helper()
	_, err := f.prices.Publish(context.Background(), pricedomain.PublishRequest{
		Country:      country,
		Segment:      "dealer",
		PricingType:  "publish",
		UnitPriceNet: decimal.RequireFromString(amount),
		Currency:     "EUR",
	})
	require.NoError(t, err)
}

func (f *fixture) seedFreeQuota(t *testing.T, amount, days int32) {
	t.Helper()
	_, err := f.freeQuota.Upsert(context.Background(), freequotadomain.UpsertRequest{
		Country:     "DE",
		Segment:     "dealer",
		QuotaAmount: amount,
		PeriodDays:  days,
	})
	require.NoError(t, err)
}

func (f *fixture) seedSubscription(t *testing.T, sellerID string, quota int32) *subscriptiondomain.Subscription {
	t.Helper()
	sub, err := f.subscriptions.Create(context.Background(), subscriptiondomain.CreateSubscriptionRequest{
		SellerID:             sellerID,
		PackageCode:          "dealer-basic",
		StartAt:              testNow.AddDate(0, 0, -1),
		EndAt:                testNow.AddDate(0, 1, 0),
		IncludedListingQuota: quota,
	})
	require.NoError(t, err)
	return sub
}

func (f *fixture) seedHalfPriceCampaign(t *testing.T) {
	t.Helper()
	_, err := f.campaigns.Create(context.Background(), campaigndomain.CreateRequest{
		Name:            "half price",
		Type:            "corporate",
		Target:          "discount",
		Status:          "active",
		Priority:        1,
		DiscountPercent: decimal.NullDecimal{Decimal: decimal.NewFromInt(50), Valid: true},
		StartAt:         testNow.Add(-time.Hour),
		EndAt:           testNow.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
}

func evaluateReq(listingID string) monetizationdomain.EvaluateRequest {
	return monetizationdomain.EvaluateRequest{
		SellerID:  "seller-1",
		Country:   "de",
		ListingID: listingID,
	}
}

func (f *fixture) evaluateAndCommit(t *testing.T, listingID string) (*monetizationdomain.Decision, *monetizationdomain.Receipt, error) {
	t.Helper()
	ctx := context.Background()
	decision, err := f.svc.Evaluate(ctx, evaluateReq(listingID))
	require.NoError(t, err)
	receipt, err := f.svc.Commit(ctx, commitReq(decision, ""))
	return decision, receipt, err
}

func commitReq(d *monetizationdomain.Decision, invoiceID string) monetizationdomain.CommitRequest {
	return monetizationdomain.CommitRequest{
		Decision:  *d,
		ListingID: d.ListingID,
		SellerID:  d.SellerID,
		UserID:    "user-1",
		InvoiceID: invoiceID,
	}
}

func TestEvaluate_FreeQuota(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	f.seedFreeQuota(t, 1, 30)

	decision, err := f.svc.Evaluate(context.Background(), evaluateReq("listing-1"))
	require.NoError(t, err)

	assert.Equal(t, monetizationdomain.OutcomeFree, decision.Outcome)
	assert.Equal(t, consumptiondomain.SourceFreeQuota, decision.Source)
	assert.True(t, decision.IsFree)
	assert.False(t, decision.IsCoveredByPackage)
	assert.Equal(t, "DE", decision.Country)
	assert.Equal(t, "dealer", decision.Segment)
	assert.True(t, decision.ChargeAmount.IsZero())
	assert.True(t, decision.TaxAmount.IsZero())
	assert.True(t, decision.GrossAmount.IsZero())
	assert.NotNil(t, decision.FreeQuotaConfigID)
}

func TestEvaluate_PaidWithVat(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")

	decision, err := f.svc.Evaluate(context.Background(), evaluateReq("listing-1"))
	require.NoError(t, err)

	assert.Equal(t, monetizationdomain.OutcomePaid, decision.Outcome)
	assert.Equal(t, consumptiondomain.SourcePaidExtra, decision.Source)
	assert.Equal(t, "10.00", decision.BaseUnitPrice.StringFixed(2))
	assert.Equal(t, "10.00", decision.ChargeAmount.StringFixed(2))
	assert.Equal(t, "1.90", decision.TaxAmount.StringFixed(2))
	assert.Equal(t, "11.90", decision.GrossAmount.StringFixed(2))
	assert.Equal(t, "EUR", decision.Currency)
	require.NotNil(t, decision.PriceConfigVersion)
	assert.Equal(t, int32(1), *decision.PriceConfigVersion)
	assert.Nil(t, decision.AppliedDiscount)
}

func TestEvaluate_CampaignDiscount(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	f.seedHalfPriceCampaign(t)

	decision, err := f.svc.Evaluate(context.Background(), evaluateReq("listing-1"))
	require.NoError(t, err)

	assert.Equal(t, monetizationdomain.OutcomePaidDiscounted, decision.Outcome)
	assert.Equal(t, consumptiondomain.SourcePaidExtra, decision.Source)
	require.NotNil(t, decision.AppliedDiscount)
	assert.Equal(t, "half price", decision.AppliedDiscount.CampaignName)
	assert.Equal(t, "10.00", decision.BaseUnitPrice.StringFixed(2))
	assert.Equal(t, "5.00", decision.DiscountAmount.StringFixed(2))
	assert.Equal(t, "5.00", decision.ChargeAmount.StringFixed(2))
	assert.Equal(t, "0.95", decision.TaxAmount.StringFixed(2))
	assert.Equal(t, "5.95", decision.GrossAmount.StringFixed(2))
}

func TestEvaluate_FreeBeatsSubscription(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	f.seedFreeQuota(t, 1, 30)
	sub := f.seedSubscription(t, "seller-1", 5)

	decision, _, err := f.evaluateAndCommit(t, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, monetizationdomain.OutcomeFree, decision.Outcome)

	decision, receipt, err := f.evaluateAndCommit(t, "listing-2")
	require.NoError(t, err)
	assert.Equal(t, monetizationdomain.OutcomeSubscription, decision.Outcome)
	assert.True(t, decision.IsCoveredByPackage)
	require.NotNil(t, receipt.SubscriptionID)
	assert.Equal(t, sub.ID, *receipt.SubscriptionID)

	stored, err := f.subscriptionRepo.FindByID(context.Background(), f.db, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), stored.UsedListingQuota)
}

func TestEvaluate_ConfigurationMissing(t *testing.T) {
	t.Run("vat", func(t *testing.T) {
		f := newFixture(t)
		f.seedPrice(t, "DE", "10.00")

		_, err := f.svc.Evaluate(context.Background(), evaluateReq("listing-1"))
		require.Error(t, err)
		assert.ErrorIs(t, err, monetizationdomain.ErrConfigurationMissing)
		assert.ErrorIs(t, err, vatdomain.ErrNotConfigured)
	})

	t.Run("price", func(t *testing.T) {
		f := newFixture(t)
		f.seedVat(t, "DE")

		_, err := f.svc.Evaluate(context.Background(), evaluateReq("listing-1"))
		require.Error(t, err)
		assert.ErrorIs(t, err, monetizationdomain.ErrConfigurationMissing)
		assert.ErrorIs(t, err, pricedomain.ErrNotConfigured)
	})

	t.Run("free listing still needs vat", func(t *testing.T) {
		f := newFixture(t)
		f.seedFreeQuota(t, 1, 30)

		_, err := f.svc.Evaluate(context.Background(), evaluateReq("listing-1"))
		assert.ErrorIs(t, err, monetizationdomain.ErrConfigurationMissing)
	})
}

func TestEvaluate_InvalidRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  monetizationdomain.EvaluateRequest
		want error
	}{
		{name: "seller", req: monetizationdomain.EvaluateRequest{Country: "DE", ListingID: "l"}, want: monetizationdomain.ErrInvalidSeller},
		{name: "listing", req: monetizationdomain.EvaluateRequest{SellerID: "s", Country: "DE"}, want: monetizationdomain.ErrInvalidListing},
		{name: "country", req: monetizationdomain.EvaluateRequest{SellerID: "s", ListingID: "l", Country: "D"}, want: monetizationdomain.ErrInvalidCountry},
		{name: "pricing type", req: monetizationdomain.EvaluateRequest{SellerID: "s", ListingID: "l", Country: "DE", PricingType: "bump"}, want: monetizationdomain.ErrInvalidPricingType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Evaluate(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCommit_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	ctx := context.Background()

	decision, err := f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	require.NoError(t, err)

	receipt, err := f.svc.Commit(ctx, commitReq(decision, ""))
	require.NoError(t, err)
	assert.Equal(t, "11.90", receipt.GrossAmount.StringFixed(2))

	_, err = f.svc.Commit(ctx, commitReq(decision, ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, monetizationdomain.ErrAlreadyConsumed)
	assert.True(t, monetizationdomain.IsBenign(err))

	_, err = f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	assert.ErrorIs(t, err, monetizationdomain.ErrAlreadyConsumed)

	var count int64
	require.NoError(t, f.db.Model(&consumptiondomain.ConsumptionLog{}).Where("listing_id = ?", "listing-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// blindConsumptionRepo never sees existing rows so only the unique index
// can reject a second commit.
type blindConsumptionRepo struct {
	consumptiondomain.Repository
}

func (blindConsumptionRepo) ExistsForListing(context.Context, *gorm.DB, string) (bool, error) {
	return false, nil
}

func TestCommit_UniqueIndexRejectsDuplicate(t *testing.T) {
	f := newFixture(t, func(p *Params) {
		p.ConsumptionRepo = blindConsumptionRepo{Repository: p.ConsumptionRepo}
	})
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	ctx := context.Background()

	decision, err := f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	require.NoError(t, err)
	_, err = f.svc.Commit(ctx, commitReq(decision, ""))
	require.NoError(t, err)

	_, err = f.svc.Commit(ctx, commitReq(decision, ""))
	assert.ErrorIs(t, err, monetizationdomain.ErrAlreadyConsumed)
}

func TestCommit_SubscriptionQuotaNeverOverdrawn(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	sub := f.seedSubscription(t, "seller-1", 3)
	ctx := context.Background()

	const workers = 8
	decisions := make([]*monetizationdomain.Decision, workers)
	for i := range decisions {
		d, err := f.svc.Evaluate(ctx, evaluateReq(fmt.Sprintf("listing-%d", i)))
		require.NoError(t, err)
		require.Equal(t, monetizationdomain.OutcomeSubscription, d.Outcome)
		decisions[i] = d
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for _, d := range decisions {
		wg.Add(1)
		go func(d *monetizationdomain.Decision) {
			defer wg.Done()
			_, err := f.svc.Commit(ctx, commitReq(d, ""))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, monetizationdomain.ErrConcurrencyConflict):
				conflicts++
			default:
				t.Errorf("unexpected commit error: %v", err)
			}
		}(d)
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, workers-3, conflicts)

	stored, err := f.subscriptionRepo.FindByID(ctx, f.db, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.IncludedListingQuota, stored.UsedListingQuota)

	next, err := f.svc.Evaluate(ctx, evaluateReq("listing-next"))
	require.NoError(t, err)
	assert.Equal(t, monetizationdomain.OutcomePaid, next.Outcome)
}

func TestCommit_StaleFreeDecisionConflicts(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	f.seedFreeQuota(t, 1, 30)
	ctx := context.Background()

	first, err := f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	require.NoError(t, err)
	second, err := f.svc.Evaluate(ctx, evaluateReq("listing-2"))
	require.NoError(t, err)
	require.Equal(t, monetizationdomain.OutcomeFree, second.Outcome)

	_, err = f.svc.Commit(ctx, commitReq(first, ""))
	require.NoError(t, err)

	_, err = f.svc.Commit(ctx, commitReq(second, ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, monetizationdomain.ErrConcurrencyConflict)
	assert.True(t, monetizationdomain.IsRetryable(err))

	again, err := f.svc.Evaluate(ctx, evaluateReq("listing-2"))
	require.NoError(t, err)
	assert.Equal(t, monetizationdomain.OutcomePaid, again.Outcome)
}

func TestEvaluate_RollingWindowBoundary(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	f.seedFreeQuota(t, 1, 30)
	ctx := context.Background()

	decision, _, err := f.evaluateAndCommit(t, "listing-1")
	require.NoError(t, err)
	require.Equal(t, monetizationdomain.OutcomeFree, decision.Outcome)

	f.clock.Set(testNow.AddDate(0, 0, 30).Add(-time.Second))
	inside, err := f.svc.Evaluate(ctx, evaluateReq("listing-2"))
	require.NoError(t, err)
	assert.Equal(t, monetizationdomain.OutcomePaid, inside.Outcome)

	f.clock.Set(testNow.AddDate(0, 0, 30))
	edge, err := f.svc.Evaluate(ctx, evaluateReq("listing-2"))
	require.NoError(t, err)
	assert.Equal(t, monetizationdomain.OutcomeFree, edge.Outcome)
}

func TestCommit_PaidWritesInvoiceLine(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	f.seedHalfPriceCampaign(t)
	ctx := context.Background()

	decision, err := f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	require.NoError(t, err)

	receipt, err := f.svc.Commit(ctx, commitReq(decision, "inv-100"))
	require.NoError(t, err)
	require.NotNil(t, receipt.InvoiceLineID)

	lines, err := f.invoiceRepo.ListByInvoice(ctx, f.db, "inv-100")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, *receipt.InvoiceLineID, line.ID)
	assert.Equal(t, "listing-1", line.ListingID)
	assert.Equal(t, "10.00", line.UnitPriceNet.StringFixed(2))
	assert.Equal(t, "5.00", line.DiscountAmount.StringFixed(2))
	assert.Equal(t, "5.00", line.NetAmount.StringFixed(2))
	assert.Equal(t, "0.95", line.TaxAmount.StringFixed(2))
	assert.Equal(t, "5.95", line.GrossAmount.StringFixed(2))

	stored, err := f.consumptionRepo.FindByListing(ctx, f.db, "listing-1")
	require.NoError(t, err)
	require.NotNil(t, stored.CampaignID)
	assert.Equal(t, decision.AppliedDiscount.CampaignID, *stored.CampaignID)
}

func TestCommit_SnapshotSurvivesConfigChange(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	ctx := context.Background()

	decision, err := f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	require.NoError(t, err)

	f.seedPrice(t, "DE", "99.00")

	receipt, err := f.svc.Commit(ctx, commitReq(decision, ""))
	require.NoError(t, err)
	assert.Equal(t, "10.00", receipt.ChargeAmount.StringFixed(2))
	assert.Equal(t, "11.90", receipt.GrossAmount.StringFixed(2))
}

func TestCommit_InvalidDecision(t *testing.T) {
	f := newFixture(t)
	f.seedVat(t, "DE")
	f.seedPrice(t, "DE", "10.00")
	ctx := context.Background()

	decision, err := f.svc.Evaluate(ctx, evaluateReq("listing-1"))
	require.NoError(t, err)

	t.Run("gross mismatch", func(t *testing.T) {
		tampered := *decision
		tampered.GrossAmount = decimal.RequireFromString("1.00")
		_, err := f.svc.Commit(ctx, commitReq(&tampered, ""))
		assert.ErrorIs(t, err, monetizationdomain.ErrInvalidDecision)
	})

	t.Run("outcome source mismatch", func(t *testing.T) {
		tampered := *decision
		tampered.Outcome = monetizationdomain.OutcomeFree
		_, err := f.svc.Commit(ctx, commitReq(&tampered, ""))
		assert.ErrorIs(t, err, monetizationdomain.ErrInvalidDecision)
	})

	t.Run("other listing", func(t *testing.T) {
		req := commitReq(decision, "")
		req.ListingID = "listing-2"
		_, err := f.svc.Commit(ctx, req)
		assert.ErrorIs(t, err, monetizationdomain.ErrInvalidDecision)
	})

	t.Run("missing user", func(t *testing.T) {
		req := commitReq(decision, "")
		req.UserID = ""
		_, err := f.svc.Commit(ctx, req)
		assert.ErrorIs(t, err, monetizationdomain.ErrInvalidUser)
	})

	var count int64
	require.NoError(t, f.db.Model(&consumptiondomain.ConsumptionLog{}).Count(&count).Error)
	assert.Zero(t, count)
}
