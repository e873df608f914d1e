package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/events"
	"auction-market/internal/lock"
	"auction-market/internal/metrics"
	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/internal/tracing"
	"auction-market/utils"

	"github.com/shopspring/decimal"
)

// minimumIncrement is the amount a bid must clear the current minimum by
var minimumIncrement = decimal.NewFromInt(1)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo    repository.AuctionDB
	locker  lock.Locker
	emitter *events.Emitter
	metrics *metrics.Metrics
}

// NewBiddingService creates a new BiddingService instance.
// emitter and m may be nil.
func NewBiddingService(repo repository.AuctionDB, locker lock.Locker, emitter *events.Emitter, m *metrics.Metrics) *BiddingService {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return &BiddingService{
		repo:    repo,
		locker:  locker,
		emitter: emitter,
		metrics: m,
	}
}

// PlaceBid validates and records a user's bid for a listing.
// It reports true when the user had no bid on the listing before.
func (s *BiddingService) PlaceBid(ctx context.Context, listingID, userID string, price decimal.Decimal) (models.Bid, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "bidding.PlaceBid")
	defer span.End()

	if listingID == "" || userID == "" {
		s.metrics.IncBidRejected("invalid")
		return models.Bid{}, false, fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrInvalidBid)
	}
	if !price.IsPositive() {
		s.metrics.IncBidRejected("invalid")
		return models.Bid{}, false, fmt.Errorf("service: %w - price must be a positive number", auctionerrors.ErrInvalidBid)
	}
	if !models.ValidAmount(price) {
		s.metrics.IncBidRejected("invalid")
		return models.Bid{}, false, fmt.Errorf("service: %w - price must have at most 16 integer digits and 4 decimal places", auctionerrors.ErrInvalidBid)
	}

	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return models.Bid{}, false, fmt.Errorf("service: failed to lock listing %s: %w", listingID, err)
	}
	defer unlock()

	existing, err := s.validateBid(ctx, listingID, userID, price)
	if err != nil {
		s.metrics.IncBidRejected(rejectReason(err))
		return models.Bid{}, false, err
	}

	now := time.Now().UTC()
	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		UserID:    userID,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		bid.BidID = existing.BidID
		bid.CreatedAt = existing.CreatedAt
	}

	created, err := s.repo.SaveBid(ctx, bid)
	if err != nil {
		s.metrics.IncBidRejected(rejectReason(err))
		return models.Bid{}, false, fmt.Errorf("service: failed to save bid on listing %s by user %s: %w", listingID, userID, err)
	}

	s.metrics.IncBidPlaced(created)
	s.emitter.BidPlaced(ctx, bid, created)
	return bid, created, nil
}

// validateBid checks the listing state and the minimum bid rule.
// It returns the caller's existing bid on the listing, if any.
func (s *BiddingService) validateBid(ctx context.Context, listingID, userID string, price decimal.Decimal) (*models.Bid, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if listing.IsSoldOut {
		return nil, fmt.Errorf("service: %w - bidding is closed", auctionerrors.ErrListingSoldOut)
	}
	if !price.GreaterThan(listing.Price) {
		return nil, fmt.Errorf("service: %w - price must exceed the listing price of %s", auctionerrors.ErrBidTooLow, listing.Price.StringFixed(2))
	}

	minimum := listing.Price

	highest, err := s.repo.GetWinningBid(ctx, listingID)
	switch {
	case err == nil:
		minimum = decimal.Max(minimum, highest.Price)
	case !errors.Is(err, auctionerrors.ErrNoBids):
		return nil, fmt.Errorf("service: failed to check winning bid: %w", err)
	}

	var existing *models.Bid
	own, err := s.repo.GetUserBid(ctx, listingID, userID)
	switch {
	case err == nil:
		existing = &own
		minimum = decimal.Max(minimum, own.Price)
	case !errors.Is(err, auctionerrors.ErrBidNotFound):
		return nil, fmt.Errorf("service: failed to check own bid: %w", err)
	}

	minimum = minimum.Add(minimumIncrement)
	if !price.GreaterThan(minimum) {
		return nil, fmt.Errorf("service: %w - your bid must be higher than %s", auctionerrors.ErrBidTooLow, minimum.StringFixed(2))
	}

	return existing, nil
}

// GetBidHistory returns all bids for a listing, most recently updated first
func (s *BiddingService) GetBidHistory(ctx context.Context, listingID string) ([]models.BidDetail, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	history, err := s.repo.GetBidHistory(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	return history, nil
}

// GetWinningBid returns the highest bid for a listing
func (s *BiddingService) GetWinningBid(ctx context.Context, listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	winningBid, err := s.repo.GetWinningBid(ctx, listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %s: %w", listingID, err)
	}

	return winningBid, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return "too_low"
	case errors.Is(err, auctionerrors.ErrListingSoldOut):
		return "sold_out"
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return "not_found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return "invalid"
	default:
		return "error"
	}
}
