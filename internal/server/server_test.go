package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	campaignrepo "github.com/smallbiznis/classifieds/internal/campaign/repository"
	campaignservice "github.com/smallbiznis/classifieds/internal/campaign/service"
	"github.com/smallbiznis/classifieds/internal/clock"
	"github.com/smallbiznis/classifieds/internal/config"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	consumptionrepo "github.com/smallbiznis/classifieds/internal/consumption/repository"
	consumptionservice "github.com/smallbiznis/classifieds/internal/consumption/service"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	freequotarepo "github.com/smallbiznis/classifieds/internal/freequota/repository"
	freequotaservice "github.com/smallbiznis/classifieds/internal/freequota/service"
	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/classifieds/internal/invoice/repository"
	invoiceservice "github.com/smallbiznis/classifieds/internal/invoice/service"
	monetizationservice "github.com/smallbiznis/classifieds/internal/monetization/service"
	"github.com/smallbiznis/classifieds/internal/observability"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	pricerepo "github.com/smallbiznis/classifieds/internal/price/repository"
	priceservice "github.com/smallbiznis/classifieds/internal/price/service"
	"github.com/smallbiznis/classifieds/internal/quote"
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
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	vatSvc := vatservice.New(vatservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: vatRepo})
	priceSvc := priceservice.New(priceservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: priceRepo})

	return NewServer(ServerParams{
		Gin:     NewEngine(observability.Config{LogLevel: "info"}, nil),
		Cfg:     cfg,
		Pricing: pricing,
		MonetizationSvc: monetizationservice.New(monetizationservice.Params{
			DB:               db,
			Log:              log,
			GenID:            node,
			Clock:            fake,
			Pricing:          pricing,
			VatRates:         vatSvc,
			Prices:           priceSvc,
			FreeQuota:        freequotaservice.NewEvaluator(freequotaservice.EvaluatorParams{Repo: quotaRepo, ConsumptionRepo: consRepo}),
			Campaigns:        campaignservice.NewResolver(campaignservice.ResolverParams{DB: db, Log: log, Repo: campRepo, Pricing: pricing}),
			SubscriptionRepo: subRepo,
			ConsumptionRepo:  consRepo,
			InvoiceRepo:      invRepo,
		}),
		Quotes:          quote.NewMemoryStore(fake),
		VatSvc:          vatSvc,
		PriceSvc:        priceSvc,
		FreeQuotaSvc:    freequotaservice.New(freequotaservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: quotaRepo}),
		SubscriptionSvc: subscriptionservice.NewService(subscriptionservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: subRepo}),
		CampaignSvc:     campaignservice.New(campaignservice.Params{DB: db, Log: log, GenID: node, Clock: fake, Repo: campRepo}),
		ConsumptionSvc:  consumptionservice.New(consumptionservice.Params{DB: db, Log: log, Repo: consRepo}),
		InvoiceSvc:      invoiceservice.NewService(invoiceservice.Params{DB: db, Repo: invRepo}),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func seedPaidConfig(t *testing.T, s *Server) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/admin/v1/vat-rates", gin.H{
		"country":    "DE",
		"rate":       "19",
		"valid_from": testNow.AddDate(-1, 0, 0).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodPost, "/admin/v1/price-configs", gin.H{
		"country":        "DE",
		"segment":        "dealer",
		"pricing_type":   "publish",
		"unit_price_net": "10.00",
		"currency":       "EUR",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

type pricingBody struct {
	Data struct {
		QuoteID  string `json:"quote_id"`
		Decision struct {
			Outcome      string          `json:"outcome"`
			ChargeAmount decimal.Decimal `json:"charge_amount"`
			TaxAmount    decimal.Decimal `json:"tax_amount"`
			GrossAmount  decimal.Decimal `json:"gross_amount"`
		} `json:"decision"`
	} `json:"data"`
}

type receiptBody struct {
	Data struct {
		ListingID   string          `json:"listing_id"`
		Source      string          `json:"source"`
		GrossAmount decimal.Decimal `json:"gross_amount"`
	} `json:"data"`
}

type errorBody struct {
	Error struct {
		Type   string            `json:"type"`
		Errors []ValidationError `json:"errors"`
	} `json:"error"`
}

func evaluate(t *testing.T, s *Server, listingID string) (*httptest.ResponseRecorder, pricingBody) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/listings/"+listingID+"/pricing", gin.H{
		"seller_id": "seller-1",
		"country":   "DE",
	})
	var body pricingBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func commit(t *testing.T, s *Server, listingID, quoteID string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, s, http.MethodPost, "/api/v1/listings/"+listingID+"/consumption", gin.H{
		"quote_id":  quoteID,
		"seller_id": "seller-1",
		"user_id":   "user-1",
	})
}

func TestPricingFlow(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})
	seedPaidConfig(t, s)

	rec, priced := evaluate(t, s, "listing-1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, priced.Data.QuoteID)
	assert.Equal(t, "paid", priced.Data.Decision.Outcome)
	assert.Equal(t, "10.00", priced.Data.Decision.ChargeAmount.StringFixed(2))
	assert.Equal(t, "1.90", priced.Data.Decision.TaxAmount.StringFixed(2))
	assert.Equal(t, "11.90", priced.Data.Decision.GrossAmount.StringFixed(2))

	rec = commit(t, s, "listing-1", priced.Data.QuoteID)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var receipt receiptBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "listing-1", receipt.Data.ListingID)
	assert.Equal(t, "paid_extra", receipt.Data.Source)
	assert.Equal(t, "11.90", receipt.Data.GrossAmount.StringFixed(2))

	rec = doJSON(t, s, http.MethodGet, "/api/v1/listings/listing-1/consumption", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "11.90", receipt.Data.GrossAmount.StringFixed(2))
}

func TestPricingFlow_QuoteIsSingleUse(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})
	seedPaidConfig(t, s)

	_, priced := evaluate(t, s, "listing-1")
	require.Equal(t, http.StatusCreated, commit(t, s, "listing-1", priced.Data.QuoteID).Code)

	rec := commit(t, s, "listing-1", priced.Data.QuoteID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "quote_expired", body.Error.Type)

	rec, _ = evaluate(t, s, "listing-1")
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "already_consumed", body.Error.Type)
}

func TestPricingFlow_QuoteBoundToListing(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})
	seedPaidConfig(t, s)

	_, priced := evaluate(t, s, "listing-1")
	rec := commit(t, s, "listing-2", priced.Data.QuoteID)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPricingFlow_ConfigurationMissing(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})

	rec, _ := evaluate(t, s, "listing-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "configuration_missing", body.Error.Type)
}

func TestPricingFlow_ValidationErrors(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/listings/listing-1/pricing", gin.H{
		"seller_id": "seller-1",
		"country":   "D",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "invalid_country", body.Error.Errors[0].Code)
	assert.Equal(t, "country", body.Error.Errors[0].Field)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/listings/listing-1/consumption", gin.H{"seller_id": "seller-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/listings/listing-1/consumption", gin.H{
		"quote_id":  "not-a-quote",
		"seller_id": "seller-1",
		"user_id":   "user-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetConsumption_NotFound(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/listings/unknown/consumption", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminTokenRequired(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test", AdminAPIToken: "secret"})

	rec := doJSON(t, s, http.MethodGet, "/admin/v1/vat-rates", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/admin/v1/vat-rates", nil, HeaderAdminToken, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/admin/v1/vat-rates", nil, HeaderAdminToken, "secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminTokenRequired_ProductionWithoutToken(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "production"})

	rec := doJSON(t, s, http.MethodGet, "/admin/v1/vat-rates", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminSellerConsumption(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})
	seedPaidConfig(t, s)

	for _, id := range []string{"listing-1", "listing-2"} {
		_, priced := evaluate(t, s, id)
		require.Equal(t, http.StatusCreated, commit(t, s, id, priced.Data.QuoteID).Code)
	}

	rec := doJSON(t, s, http.MethodGet, "/admin/v1/sellers/seller-1/consumption?page_size=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Data          []consumptiondomain.ConsumptionLog `json:"data"`
		NextPageToken string                             `json:"next_page_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "listing-2", body.Data[0].ListingID)
	assert.NotEmpty(t, body.NextPageToken)

	rec = doJSON(t, s, http.MethodGet, "/admin/v1/sellers/seller-1/consumption?page_size=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCampaignAdmin(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})
	seedPaidConfig(t, s)

	rec := doJSON(t, s, http.MethodPost, "/admin/v1/campaigns", gin.H{
		"name":             "launch",
		"type":             "corporate",
		"target":           "discount",
		"status":           "active",
		"priority":         1,
		"discount_percent": "50",
		"start_at":         testNow.Add(-time.Hour).Format(time.RFC3339),
		"end_at":           "2026-06-30",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, priced := evaluate(t, s, "listing-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paid_discounted", priced.Data.Decision.Outcome)
	assert.Equal(t, "5.95", priced.Data.Decision.GrossAmount.StringFixed(2))

	rec = doJSON(t, s, http.MethodPost, "/admin/v1/campaigns", gin.H{
		"name":     "broken",
		"type":     "corporate",
		"target":   "discount",
		"start_at": "yesterday",
		"end_at":   "2026-06-30",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, config.Config{Environment: "test"})

	rec := doJSON(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMapError(t *testing.T) {
	status, payload := mapError(ErrRateLimited)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", payload.Type)

	kind, code := classifyErrorForLog(context.DeadlineExceeded)
	assert.Equal(t, "server", kind)
	assert.Equal(t, "internal_error", code)
}
