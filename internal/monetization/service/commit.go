package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	consumptiondomain "github.com/smallbiznis/classifieds/internal/consumption/domain"
	invoicedomain "github.com/smallbiznis/classifieds/internal/invoice/domain"
	monetizationdomain "github.com/smallbiznis/classifieds/internal/monetization/domain"
	obslogger "github.com/smallbiznis/classifieds/internal/observability/logger"
	"github.com/smallbiznis/classifieds/pkg/db"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Commit persists the decision in one transaction. Quota-backed sources are
// re-validated under row locks; the unique listing_id index is the final
// guard when two commits for the same listing race.
func (s *Service) Commit(ctx context.Context, req monetizationdomain.CommitRequest) (*monetizationdomain.Receipt, error) {
	ctx, span := tracer.Start(ctx, "monetization.Commit")
	defer span.End()

	req.ListingID = strings.TrimSpace(req.ListingID)
	req.SellerID = strings.TrimSpace(req.SellerID)
	req.UserID = strings.TrimSpace(req.UserID)
	req.InvoiceID = strings.TrimSpace(req.InvoiceID)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	decision := req.Decision
	span.SetAttributes(attribute.String("source", string(decision.Source)))

	log := obslogger.WithListing(obslogger.WithContext(ctx, s.log), req.ListingID, req.SellerID)
	now := s.clock.Now().UTC()

	var receipt *monetizationdomain.Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		receipt, err = s.commitTx(ctx, tx, req, now)
		return err
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			err = fmt.Errorf("%w: listing %s", monetizationdomain.ErrAlreadyConsumed, req.ListingID)
		}
		s.metrics.RecordCommit(ctx, string(decision.Source), commitResult(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		switch {
		case errors.Is(err, monetizationdomain.ErrAlreadyConsumed):
			log.Info("listing already consumed")
		case errors.Is(err, monetizationdomain.ErrConcurrencyConflict):
			log.Warn("quota exhausted before commit", zap.String("source", string(decision.Source)))
		default:
			log.Error("commit failed", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.RecordCommit(ctx, string(decision.Source), "committed")
	log.Info("listing consumption committed",
		zap.String("consumption_id", receipt.ConsumptionID.String()),
		zap.String("source", string(receipt.Source)),
		zap.String("gross_amount", receipt.GrossAmount.StringFixed(2)),
	)
	return receipt, nil
}

func (s *Service) commitTx(ctx context.Context, tx *gorm.DB, req monetizationdomain.CommitRequest, now time.Time) (*monetizationdomain.Receipt, error) {
	decision := req.Decision

	consumed, err := s.consumptionRepo.ExistsForListing(ctx, tx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if consumed {
		return nil, fmt.Errorf("%w: listing %s", monetizationdomain.ErrAlreadyConsumed, req.ListingID)
	}

	entry := &consumptiondomain.ConsumptionLog{
		ID:                 s.genID.Generate(),
		ListingID:          req.ListingID,
		SellerID:           req.SellerID,
		UserID:             req.UserID,
		Country:            decision.Country,
		Segment:            decision.Segment,
		PricingType:        decision.PricingType,
		Source:             decision.Source,
		ChargeAmount:       decision.ChargeAmount,
		DiscountAmount:     decision.DiscountAmount,
		TaxAmount:          decision.TaxAmount,
		GrossAmount:        decision.GrossAmount,
		Currency:           decision.Currency,
		VatRate:            decision.VatRate,
		PriceConfigID:      decision.PriceConfigID,
		PriceConfigVersion: decision.PriceConfigVersion,
		CreatedAt:          now,
	}
	if decision.VatRateID != 0 {
		vatRateID := decision.VatRateID
		entry.VatRateID = &vatRateID
	}
	if decision.AppliedDiscount != nil {
		campaignID := decision.AppliedDiscount.CampaignID
		entry.CampaignID = &campaignID
	}

	switch decision.Source {
	case consumptiondomain.SourceFreeQuota:
		configID, err := s.reserveFreeQuota(ctx, tx, req, now)
		if err != nil {
			return nil, err
		}
		entry.FreeQuotaConfigID = &configID

	case consumptiondomain.SourceSubscriptionQuota:
		subscriptionID, err := s.reserveSubscriptionQuota(ctx, tx, req.SellerID, now)
		if err != nil {
			return nil, err
		}
		entry.SubscriptionID = &subscriptionID

	case consumptiondomain.SourcePaidExtra:
		if req.InvoiceID != "" {
			line := invoicedomain.NewPaidLine(s.genID.Generate(), invoicedomain.PaidLine{
				InvoiceID:          req.InvoiceID,
				ListingID:          req.ListingID,
				PricingType:        decision.PricingType,
				Country:            decision.Country,
				Currency:           decision.Currency,
				UnitPriceNet:       decision.BaseUnitPrice,
				DiscountAmount:     decision.DiscountAmount,
				NetAmount:          decision.ChargeAmount,
				TaxRate:            decision.VatRate,
				TaxAmount:          decision.TaxAmount,
				GrossAmount:        decision.GrossAmount,
				PriceConfigID:      decision.PriceConfigID,
				PriceConfigVersion: decision.PriceConfigVersion,
				CampaignID:         entry.CampaignID,
			}, now)
			if err := s.invoiceRepo.Insert(ctx, tx, line); err != nil {
				return nil, err
			}
			entry.InvoiceLineID = &line.ID
		}
	}

	if err := s.consumptionRepo.Insert(ctx, tx, entry); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, fmt.Errorf("%w: listing %s", monetizationdomain.ErrAlreadyConsumed, req.ListingID)
		}
		return nil, err
	}

	return monetizationdomain.ReceiptFromLog(entry), nil
}

// reserveFreeQuota recounts usage while holding the free quota config row lock.
func (s *Service) reserveFreeQuota(ctx context.Context, tx *gorm.DB, req monetizationdomain.CommitRequest, now time.Time) (snowflake.ID, error) {
	d := req.Decision
	eligibility, err := s.freeQuota.EligibleForUpdate(ctx, tx, req.SellerID, d.Country, d.Segment, now)
	if err != nil {
		return 0, err
	}
	if !eligibility.Eligible {
		return 0, fmt.Errorf("%w: free quota exhausted", monetizationdomain.ErrConcurrencyConflict)
	}
	return eligibility.Config.ID, nil
}

// reserveSubscriptionQuota locks the seller's active packages and takes one
// slot from the first that still has room. It never falls back to paid.
func (s *Service) reserveSubscriptionQuota(ctx context.Context, tx *gorm.DB, sellerID string, now time.Time) (snowflake.ID, error) {
	subscriptions, err := s.subscriptionRepo.ListActiveForUpdate(ctx, tx, sellerID, now)
	if err != nil {
		return 0, err
	}

	for i := range subscriptions {
		sub := &subscriptions[i]
		if sub.Remaining() <= 0 {
			continue
		}
		affected, err := s.subscriptionRepo.IncrementUsed(ctx, tx, sub.ID, now)
		if err != nil {
			return 0, err
		}
		if affected == 1 {
			return sub.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: subscription quota exhausted", monetizationdomain.ErrConcurrencyConflict)
}

func commitResult(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, monetizationdomain.ErrAlreadyConsumed):
		return "already_consumed"
	case errors.Is(err, monetizationdomain.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, monetizationdomain.ErrInvalidDecision):
		return "invalid_decision"
	default:
		return "error"
	}
}
