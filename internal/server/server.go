package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/classifieds/internal/campaign"
	campaigndomain "github.com/smallbiznis/classifieds/internal/campaign/domain"
	"github.com/smallbiznis/classifieds/internal/config"
	"github.com/smallbiznis/classifieds/internal/consumption"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	"github.com/smallbiznis/classifieds/internal/freequota"
	freequotadomain "github.com/smallbiznis/classifieds/internal/freequota/domain"
	"github.com/smallbiznis/classifieds/internal/invoice"
	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	"github.com/smallbiznis/classifieds/internal/monetization"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
	"github.com/smallbiznis/classifieds/internal/observability"
	obslogger "github.com/smallbiznis/classifieds/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/classifieds/internal/observability/metrics"
	obstracing "github.com/smallbiznis/classifieds/internal/observability/tracing"
	"github.com/smallbiznis/classifieds/internal/price"
	pricedomain "github.com/smallbiznis/classifieds/internal/price/domain"
	"github.com/smallbiznis/classifieds/internal/quote"
	"github.com/smallbiznis/classifieds/internal/ratelimit"
	"github.com/smallbiznis/classifieds/internal/subscription"
	subscriptiondomain "github.com/smallbiznis/classifieds/internal/subscription/domain"
	"github.com/smallbiznis/classifieds/internal/vat"
	vatdomain "github.com/smallbiznis/classifieds/internal/vat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	vat.Module,
	price.Module,
	freequota.Module,
	subscription.Module,
	campaign.Module,
	consumption.Module,
	invoice.Module,
	monetization.Module,
	quote.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine  *gin.Engine
	cfg     config.Config
	pricing *config.PricingConfigHolder

	monetizationSvc monetizationdomain.Service
	quotes          quote.Store
	limiter         *ratelimit.PricingLimiter
	obsMetrics      *obsmetrics.Metrics

	vatSvc          vatdomain.Service
	priceSvc        pricedomain.Service
	freeQuotaSvc    freequotadomain.Service
	subscriptionSvc subscriptiondomain.Service
	campaignSvc     campaigndomain.Service
	consumptionSvc  consumptiondomain.Service
	invoiceSvc      invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin     *gin.Engine
	Cfg     config.Config
	Pricing *config.PricingConfigHolder

	MonetizationSvc monetizationdomain.Service
	Quotes          quote.Store
	Limiter         *ratelimit.PricingLimiter `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics       `optional:"true"`

	VatSvc          vatdomain.Service
	PriceSvc        pricedomain.Service
	FreeQuotaSvc    freequotadomain.Service
	SubscriptionSvc subscriptiondomain.Service
	CampaignSvc     campaigndomain.Service
	ConsumptionSvc  consumptiondomain.Service
	InvoiceSvc      invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		pricing:         p.Pricing,
		monetizationSvc: p.MonetizationSvc,
		quotes:          p.Quotes,
		limiter:         p.Limiter,
		obsMetrics:      p.ObsMetrics,
		vatSvc:          p.VatSvc,
		priceSvc:        p.PriceSvc,
		freeQuotaSvc:    p.FreeQuotaSvc,
		subscriptionSvc: p.SubscriptionSvc,
		campaignSvc:     p.CampaignSvc,
		consumptionSvc:  p.ConsumptionSvc,
		invoiceSvc:      p.InvoiceSvc,
	}

	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Listing monetization --------
	api.POST("/listings/:listing_id/pricing", s.EvaluatePricing)
	api.POST("/listings/:listing_id/consumption", s.CommitConsumption)
	api.GET("/listings/:listing_id/consumption", s.GetConsumption)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin/v1")
	admin.Use(s.AdminTokenRequired())

	// -------- VAT --------
	admin.GET("/vat-rates", s.ListVatRates)
	admin.POST("/vat-rates", s.CreateVatRate)

	// -------- Prices --------
	admin.GET("/price-configs", s.ListPriceConfigs)
	admin.POST("/price-configs", s.PublishPriceConfig)
	admin.GET("/price-configs/:id", s.GetPriceConfig)

	// -------- Free quota --------
	admin.GET("/free-quotas", s.ListFreeQuotas)
	admin.PUT("/free-quotas", s.UpsertFreeQuota)

	// -------- Subscriptions --------
	admin.POST("/subscriptions", s.CreateSubscription)
	admin.GET("/subscriptions/:id", s.GetSubscription)
	admin.POST("/subscriptions/:id/cancel", s.CancelSubscription)
	admin.GET("/sellers/:seller_id/subscriptions", s.ListSellerSubscriptions)

	// -------- Consumption --------
	admin.GET("/sellers/:seller_id/consumption", s.ListSellerConsumption)

	// -------- Campaigns --------
	admin.GET("/campaigns", s.ListCampaigns)
	admin.POST("/campaigns", s.CreateCampaign)
	admin.POST("/campaigns/:id/status", s.SetCampaignStatus)

	// -------- Invoices --------
	admin.GET("/invoices/:invoice_id/lines", s.ListInvoiceLines)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
