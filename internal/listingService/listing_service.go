package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/lock"
	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"

	"github.com/shopspring/decimal"
)

const defaultCategory = "All"

var maxCommission = decimal.NewFromInt(100)

// CreateInput holds the seller supplied fields of a new listing
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
	Price       decimal.Decimal
	Height      *decimal.Decimal
	Length      *decimal.Decimal
	Width       *decimal.Decimal
	Weight      *decimal.Decimal
}

// UpdateInput holds the fields to change. Nil fields keep their stored value.
type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Category    *string
	Price       *decimal.Decimal
	Height      *decimal.Decimal
	Length      *decimal.Decimal
	Width       *decimal.Decimal
	Weight      *decimal.Decimal
}

// ListingService manages the listing catalogue
type ListingService struct {
	repo       repository.ListingDB
	locker     lock.Locker
	autoVerify bool
}

// NewListingService creates a ListingService. With autoVerify new listings are open for sale immediately.
func NewListingService(repo repository.ListingDB, locker lock.Locker, autoVerify bool) *ListingService {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return &ListingService{repo: repo, locker: locker, autoVerify: autoVerify}
}

// Create stores a new listing owned by seller. Commission always starts at zero.
func (s *ListingService) Create(ctx context.Context, seller models.Identity, in CreateInput) (models.Listing, error) {
	if seller.UserID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing seller", auctionerrors.ErrUnauthorized)
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return models.Listing{}, fmt.Errorf("service: %w - title and description are required", auctionerrors.ErrInvalidListing)
	}
	if err := validatePrice(in.Price); err != nil {
		return models.Listing{}, err
	}
	if err := validateDimensions(in.Height, in.Length, in.Width, in.Weight); err != nil {
		return models.Listing{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}

	now := time.Now().UTC()
	listing := models.Listing{
		ListingID:   utils.GenerateID(),
		SellerID:    seller.UserID,
		Title:       title,
		Description: description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Category:    category,
		Price:       in.Price,
		Commission:  decimal.Zero,
		Height:      in.Height,
		Length:      in.Length,
		Width:       in.Width,
		Weight:      in.Weight,
		IsVerify:    s.autoVerify,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing: %w", err)
	}
	return listing, nil
}

// Update changes a listing on behalf of its seller
func (s *ListingService) Update(ctx context.Context, requester models.Identity, listingID string, in UpdateInput) (models.Listing, error) {
	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to lock listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if listing.SellerID != requester.UserID {
		return models.Listing{}, fmt.Errorf("service: %w - only the seller can edit listing %s", auctionerrors.ErrForbidden, listingID)
	}
	if listing.IsSoldOut {
		return models.Listing{}, fmt.Errorf("service: %w - sold listings cannot be edited", auctionerrors.ErrListingSoldOut)
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return models.Listing{}, fmt.Errorf("service: %w - title cannot be empty", auctionerrors.ErrInvalidListing)
		}
		listing.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return models.Listing{}, fmt.Errorf("service: %w - description cannot be empty", auctionerrors.ErrInvalidListing)
		}
		listing.Description = description
	}
	if in.ImageURL != nil {
		listing.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		listing.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return models.Listing{}, err
		}
	}
	if in.Price != nil && !in.Price.Equal(listing.Price) {
		bids, err := s.repo.CountBids(ctx, listingID)
		if err != nil {
			return models.Listing{}, fmt.Errorf("service: failed to count bids for listing %s: %w", listingID, err)
		}
		if bids > 0 {
			return models.Listing{}, fmt.Errorf("service: %w - price cannot change once bidding has started", auctionerrors.ErrInvalidListing)
		}
		listing.Price = *in.Price
	}
	if err := validateDimensions(in.Height, in.Length, in.Width, in.Weight); err != nil {
		return models.Listing{}, err
	}
	listing.Height = pick(in.Height, listing.Height)
	listing.Length = pick(in.Length, listing.Length)
	listing.Width = pick(in.Width, listing.Width)
	listing.Weight = pick(in.Weight, listing.Weight)
	listing.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to update listing %s: %w", listingID, err)
	}
	return listing, nil
}

// Delete removes a listing. Allowed for its seller and for admins.
func (s *ListingService) Delete(ctx context.Context, requester models.Identity, listingID string) error {
	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return fmt.Errorf("service: failed to lock listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if listing.SellerID != requester.UserID && !requester.IsAdmin() {
		return fmt.Errorf("service: %w - only the seller or an admin can delete listing %s", auctionerrors.ErrForbidden, listingID)
	}

	if err := s.repo.DeleteListing(ctx, listingID); err != nil {
		return fmt.Errorf("service: failed to delete listing %s: %w", listingID, err)
	}
	return nil
}

// Verify opens a listing for sale with the given commission percentage
func (s *ListingService) Verify(ctx context.Context, listingID string, commission decimal.Decimal) (models.Listing, error) {
	if !models.ValidAmount(commission) || commission.IsNegative() || commission.GreaterThan(maxCommission) {
		return models.Listing{}, fmt.Errorf("service: %w - commission must be between 0 and 100 with at most 4 decimal places", auctionerrors.ErrInvalidCommission)
	}

	unlock, err := s.locker.Lock(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to lock listing %s: %w", listingID, err)
	}
	defer unlock()

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if listing.IsSoldOut {
		return models.Listing{}, fmt.Errorf("service: %w - commission is fixed after the sale", auctionerrors.ErrListingSoldOut)
	}

	listing.IsVerify = true
	listing.Commission = commission
	listing.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to verify listing %s: %w", listingID, err)
	}
	return listing, nil
}

// Get returns a listing with its current bidding state
func (s *ListingService) Get(ctx context.Context, listingID string) (models.ListingSummary, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.ListingSummary{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return s.summarize(ctx, listing)
}

// ListAll returns every listing, newest first
func (s *ListingService) ListAll(ctx context.Context) ([]models.ListingSummary, error) {
	return s.list(ctx, models.ListingFilter{})
}

// ListBySeller returns the listings created by sellerID, newest first
func (s *ListingService) ListBySeller(ctx context.Context, sellerID string) ([]models.ListingSummary, error) {
	return s.list(ctx, models.ListingFilter{SellerID: sellerID})
}

// ListWon returns the listings sold to userID, newest first
func (s *ListingService) ListWon(ctx context.Context, userID string) ([]models.ListingSummary, error) {
	soldOut := true
	return s.list(ctx, models.ListingFilter{SoldTo: userID, SoldOut: &soldOut})
}

// ListBidOn returns the listings userID holds a bid on, sold or not, newest first
func (s *ListingService) ListBidOn(ctx context.Context, userID string) ([]models.ListingSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - missing user", auctionerrors.ErrUnauthorized)
	}
	return s.list(ctx, models.ListingFilter{BidderID: userID})
}

func (s *ListingService) list(ctx context.Context, filter models.ListingFilter) ([]models.ListingSummary, error) {
	listings, err := s.repo.ListListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings: %w", err)
	}

	summaries := make([]models.ListingSummary, 0, len(listings))
	for _, l := range listings {
		summary, err := s.summarize(ctx, l)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// summarize attaches the bidding price (highest bid, or the listing price without bids) and the bid count
func (s *ListingService) summarize(ctx context.Context, listing models.Listing) (models.ListingSummary, error) {
	summary := models.ListingSummary{Listing: listing, BiddingPrice: listing.Price}

	winning, err := s.repo.GetWinningBid(ctx, listing.ListingID)
	switch {
	case err == nil:
		summary.BiddingPrice = winning.Price
	case !errors.Is(err, auctionerrors.ErrNoBids):
		return models.ListingSummary{}, fmt.Errorf("service: failed to get bidding price for listing %s: %w", listing.ListingID, err)
	}

	count, err := s.repo.CountBids(ctx, listing.ListingID)
	if err != nil {
		return models.ListingSummary{}, fmt.Errorf("service: failed to count bids for listing %s: %w", listing.ListingID, err)
	}
	summary.TotalBids = count
	return summary, nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("service: %w - price must be a positive number", auctionerrors.ErrInvalidListing)
	}
	if !models.ValidAmount(price) {
		return fmt.Errorf("service: %w - price must have at most 16 integer digits and 4 decimal places", auctionerrors.ErrInvalidListing)
	}
	return nil
}

func validateDimensions(dims ...*decimal.Decimal) error {
	for _, d := range dims {
		if d == nil {
			continue
		}
		if d.IsNegative() {
			return fmt.Errorf("service: %w - dimensions cannot be negative", auctionerrors.ErrInvalidListing)
		}
		if !models.ValidAmount(*d) {
			return fmt.Errorf("service: %w - dimensions must have at most 16 integer digits and 4 decimal places", auctionerrors.ErrInvalidListing)
		}
	}
	return nil
}

func pick(v, fallback *decimal.Decimal) *decimal.Decimal {
	if v != nil {
		return v
	}
	return fallback
}
