package listing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/inmolista/backend/internal/domain/listing"
	"github.com/inmolista/backend/internal/domain/payment"
)

// SweepResult summarizes one sweep pass
type SweepResult struct {
	ListingsExpired int
	PaymentsExpired int
}

// SweepService is the periodic expiry job. It moves active listings past
// their publication window to expired, and open payments past their
// deadline to expired. Each entity is handled independently; one bad row
// never blocks the rest of the batch.
type SweepService struct {
	listings   listing.Repository
	payments   payment.Repository
	listingSvc *listing.Service
	paymentSvc *payment.Service
	batchSize  int
	logger     *zap.Logger
}

// NewSweepService creates a SweepService
func NewSweepService(listings listing.Repository, payments payment.Repository,
	listingSvc *listing.Service, paymentSvc *payment.Service,
	batchSize int, logger *zap.Logger) *SweepService {

	return &SweepService{
		listings:   listings,
		payments:   payments,
		listingSvc: listingSvc,
		paymentSvc: paymentSvc,
		batchSize:  batchSize,
		logger:     logger.Named("sweep"),
	}
}

// Run performs one sweep pass at the given instant
func (s *SweepService) Run(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	expiredListings, err := s.sweepListings(ctx, now)
	if err != nil {
		return result, err
	}
	result.ListingsExpired = expiredListings

	expiredPayments, err := s.sweepPayments(ctx, now)
	if err != nil {
		return result, err
	}
	result.PaymentsExpired = expiredPayments

	if result.ListingsExpired > 0 || result.PaymentsExpired > 0 {
		s.logger.Info("sweep pass finished",
			zap.Int("listings_expired", result.ListingsExpired),
			zap.Int("payments_expired", result.PaymentsExpired))
	}
	return result, nil
}

func (s *SweepService) sweepListings(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.listings.FindExpiredCandidates(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(candidates) > s.batchSize {
		candidates = candidates[:s.batchSize]
	}

	expired := 0
	for _, l := range candidates {
		next, changed := s.listingSvc.ProcessExpiry(l, now)
		if !changed {
			continue
		}
		if err := s.listings.Update(ctx, next); err != nil {
			s.logger.Error("failed to persist expired listing",
				zap.String("listing_id", l.ID().String()),
				zap.Error(err))
			continue
		}
		expired++
	}
	return expired, nil
}

func (s *SweepService) sweepPayments(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.payments.FindExpiredCandidates(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(candidates) > s.batchSize {
		candidates = candidates[:s.batchSize]
	}

	expired := 0
	for _, p := range candidates {
		next, changed := s.paymentSvc.ProcessExpiry(p, now)
		if !changed {
			continue
		}
		if err := s.payments.Update(ctx, next); err != nil {
			s.logger.Error("failed to persist expired payment",
				zap.String("payment_id", p.ID().String()),
				zap.Error(err))
			continue
		}
		expired++
	}
	return expired, nil
}
