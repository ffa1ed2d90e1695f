package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
	obscontext "github.com/smallbiznis/classifieds/internal/observability/context"
	obslogger "github.com/smallbiznis/classifieds/internal/observability/logger"
	"go.uber.org/zap"
)

type evaluatePricingRequest struct {
	SellerID    string `json:"seller_id"`
	Country     string `json:"country"`
	PricingType string `json:"pricing_type"`
	Segment     string `json:"segment"`
}

type evaluatePricingResponse struct {
	QuoteID   string                       `json:"quote_id"`
	ExpiresAt time.Time                    `json:"expires_at"`
	Decision  *monetizationdomain.Decision `json:"decision"`
}

// EvaluatePricing prices a listing and parks the decision as a quote.
// Nothing is consumed until the quote is committed.
func (s *Server) EvaluatePricing(c *gin.Context) {
	var req evaluatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	bindSeller(c, req.SellerID)
	if !s.allowPricing(c, req.SellerID) {
		return
	}

	ctx := c.Request.Context()
	decision, err := s.monetizationSvc.Evaluate(ctx, monetizationdomain.EvaluateRequest{
		SellerID:    req.SellerID,
		Country:     req.Country,
		ListingID:   c.Param("listing_id"),
		PricingType: req.PricingType,
		Segment:     req.Segment,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	q, err := s.quotes.Save(ctx, *decision, s.pricing.Get().QuoteTTL)
	if err != nil {
		obslogger.FromContext(ctx).Error("save quote failed", zap.Error(err))
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": evaluatePricingResponse{
		QuoteID:   q.ID,
		ExpiresAt: q.ExpiresAt,
		Decision:  decision,
	}})
}

type commitConsumptionRequest struct {
	QuoteID   string `json:"quote_id"`
	SellerID  string `json:"seller_id"`
	UserID    string `json:"user_id"`
	InvoiceID string `json:"invoice_id"`
}

// CommitConsumption commits a previously evaluated quote. A quote is
// single-use; on a concurrency conflict the caller evaluates again.
func (s *Server) CommitConsumption(c *gin.Context) {
	var req commitConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.QuoteID) == "" {
		AbortWithError(c, newValidationError("quote_id", "required", "quote_id is required"))
		return
	}
	// Reject before Take so a malformed request does not burn the quote.
	if strings.TrimSpace(req.SellerID) == "" {
		AbortWithError(c, monetizationdomain.ErrInvalidSeller)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		AbortWithError(c, monetizationdomain.ErrInvalidUser)
		return
	}
	bindSeller(c, req.SellerID)

	ctx := c.Request.Context()
	q, err := s.quotes.Take(ctx, req.QuoteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	receipt, err := s.monetizationSvc.Commit(ctx, monetizationdomain.CommitRequest{
		Decision:  q.Decision,
		ListingID: c.Param("listing_id"),
		SellerID:  req.SellerID,
		UserID:    req.UserID,
		InvoiceID: req.InvoiceID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": receipt})
}

func (s *Server) GetConsumption(c *gin.Context) {
	entry, err := s.consumptionSvc.GetByListing(c.Request.Context(), c.Param("listing_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": monetizationdomain.ReceiptFromLog(entry)})
}

// bindSeller records the seller from the body on the request context for
// the access log and the request span.
func bindSeller(c *gin.Context, sellerID string) {
	ctx := obscontext.WithSellerID(c.Request.Context(), strings.TrimSpace(sellerID))
	c.Request = c.Request.WithContext(ctx)
}
