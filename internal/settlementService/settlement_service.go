package settlement

import (
	"context"
	"errors"
	"fmt"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/events"
	"auction-market/internal/lock"
	"auction-market/internal/metrics"
	"auction-market/internal/models"
	"auction-market/internal/notify"
	"auction-market/internal/repository"
	"auction-market/internal/tracing"
	"auction-market/utils"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Notifier accepts emails for asynchronous delivery
type Notifier interface {
	Notify(ctx context.Context, email notify.Email) error
}

// Result describes a completed sale
type Result struct {
	Listing          models.Listing  `json:"listing"`
	WinningBid       models.Bid      `json:"winning_bid"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Payout           decimal.Decimal `json:"payout"`
}

// SettlementService closes auctions: it picks the winner, pays the seller and credits commission
type SettlementService struct {
	auctions    repository.AuctionDB
	users       repository.UserDB
	locker      lock.Locker
	notifier    Notifier
	emitter     *events.Emitter
	metrics     *metrics.Metrics
	adminUserID string
}

// Option customizes a SettlementService
type Option func(*SettlementService)

// WithAdminUserID routes commission to a fixed admin account
func WithAdminUserID(id string) Option {
	return func(s *SettlementService) { s.adminUserID = id }
}

// WithNotifier sends the winner email through n after a sale
func WithNotifier(n Notifier) Option {
	return func(s *SettlementService) { s.notifier = n }
}

// WithEmitter publishes a listing.sold event for every settled listing
func WithEmitter(e *events.Emitter) Option {
	return func(s *SettlementService) { s.emitter = e }
}

// WithMetrics records settlement outcomes and collected commission
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SettlementService) { s.metrics = m }
}

// NewSettlementService creates a SettlementService. A nil locker falls back to an in-process KeyedMutex.
func NewSettlementService(auctions repository.AuctionDB, users repository.UserDB, locker lock.Locker, opts ...Option) *SettlementService {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	s := &SettlementService{auctions: auctions, users: users, locker: locker}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sell settles the listing to its highest bidder on behalf of the seller
func (s *SettlementService) Sell(ctx context.Context, listingID string, requester models.Identity) (Result, error) {
	ctx, span := tracing.StartSpan(ctx, "settlement.Sell")
	defer span.End()

	if listingID == "" {
		return Result{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidListing)
	}
	if requester.UserID == "" {
		return Result{}, fmt.Errorf("service: %w - missing requester", auctionerrors.ErrUnauthorized)
	}

	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return Result{}, fmt.Errorf("service: failed to lock listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, winning, err := s.validateSale(ctx, listingID, requester)
	if err != nil {
		s.metrics.IncSettlement("rejected")
		return Result{}, err
	}

	commission := listing.Commission.Div(hundred).Mul(winning.Price)
	settlement := models.Settlement{
		ListingID:        listing.ListingID,
		SellerID:         listing.SellerID,
		BuyerID:          winning.UserID,
		AdminID:          s.resolveAdmin(ctx),
		Price:            winning.Price,
		CommissionAmount: commission,
		Payout:           winning.Price.Sub(commission),
	}

	sold, err := s.auctions.SettleListing(ctx, settlement)
	if err != nil {
		s.metrics.IncSettlement("failed")
		return Result{}, fmt.Errorf("service: failed to settle listing %s: %w", listingID, err)
	}

	s.metrics.IncSettlement("settled")
	if settlement.AdminID != "" {
		s.metrics.AddCommission(commission)
	}
	s.emitter.ListingSold(ctx, settlement)
	s.notifyWinner(ctx, sold, winning)

	utils.Info("listing settled", map[string]any{
		"listing_id": sold.ListingID,
		"buyer_id":   settlement.BuyerID,
		"price":      settlement.Price.String(),
		"commission": commission.String(),
		"payout":     settlement.Payout.String(),
	})

	return Result{
		Listing:          sold,
		WinningBid:       winning,
		CommissionAmount: commission,
		Payout:           settlement.Payout,
	}, nil
}

// validateSale checks the sale preconditions in order and returns the listing with its winning bid
func (s *SettlementService) validateSale(ctx context.Context, listingID string, requester models.Identity) (models.Listing, models.Bid, error) {
	listing, err := s.auctions.GetListing(ctx, listingID)
	if err != nil {
		return models.Listing{}, models.Bid{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if !listing.IsVerify {
		return models.Listing{}, models.Bid{}, fmt.Errorf("service: %w - wait for admin approval", auctionerrors.ErrListingNotVerified)
	}
	if listing.IsSoldOut {
		return models.Listing{}, models.Bid{}, fmt.Errorf("service: %w - listing %s", auctionerrors.ErrListingSoldOut, listingID)
	}
	if listing.SellerID != requester.UserID {
		return models.Listing{}, models.Bid{}, fmt.Errorf("service: %w - only the seller can sell listing %s", auctionerrors.ErrForbidden, listingID)
	}

	winning, err := s.auctions.GetWinningBid(ctx, listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return models.Listing{}, models.Bid{}, fmt.Errorf("service: %w - listing %s has no bids", auctionerrors.ErrNoWinningBid, listingID)
		}
		return models.Listing{}, models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %s: %w", listingID, err)
	}

	if listing.Commission.IsNegative() {
		return models.Listing{}, models.Bid{}, fmt.Errorf("service: %w - %s", auctionerrors.ErrInvalidCommission, listing.Commission.String())
	}

	return listing, winning, nil
}

// resolveAdmin returns the account receiving commission, or "" when there is none
func (s *SettlementService) resolveAdmin(ctx context.Context) string {
	if s.adminUserID != "" {
		_, err := s.users.GetUser(ctx, s.adminUserID)
		if err == nil {
			return s.adminUserID
		}
		utils.Warn("configured admin account unavailable, falling back to lookup", map[string]any{"admin_user_id": s.adminUserID, "error": err.Error()})
	}

	admin, err := s.users.FindAdmin(ctx)
	if err != nil {
		utils.Warn("no admin account found, commission credit skipped", map[string]any{"error": err.Error()})
		return ""
	}
	return admin.UserID
}

// notifyWinner enqueues the winner email. Failures are logged only.
func (s *SettlementService) notifyWinner(ctx context.Context, listing models.Listing, winning models.Bid) {
	if s.notifier == nil {
		return
	}

	buyer, err := s.users.GetUser(ctx, winning.UserID)
	if err != nil {
		utils.Error("failed to load winner for notification", map[string]any{"listing_id": listing.ListingID, "user_id": winning.UserID, "error": err.Error()})
		return
	}
	seller, err := s.users.GetUser(ctx, listing.SellerID)
	if err != nil {
		utils.Error("failed to load seller for notification", map[string]any{"listing_id": listing.ListingID, "user_id": listing.SellerID, "error": err.Error()})
		return
	}

	email := notify.WinnerEmail(buyer.Email, seller.Name, seller.Email, listing.Title, winning.Price)
	if err := s.notifier.Notify(ctx, email); err != nil {
		utils.Error("failed to enqueue winner notification", map[string]any{"listing_id": listing.ListingID, "to": buyer.Email, "error": err.Error()})
	}
}
