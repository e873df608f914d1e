package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of Store
type MemoryRepo struct {
	mu       sync.RWMutex
	bids     map[string][]models.Bid   // key: listingID -> value: one bid per bidder
	listings map[string]models.Listing // key: listingID -> value: listing
	users    map[string]models.User    // key: userID -> value: user
	emails   map[string]string         // key: lowercased email -> value: userID
	messages []models.Message
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		bids:     make(map[string][]models.Bid),
		listings: make(map[string]models.Listing),
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
	}
}

// Ping always succeeds for the in-memory store
func (r *MemoryRepo) Ping(context.Context) error { return nil }

// Close is a no-op for the in-memory store
func (r *MemoryRepo) Close() {}

// GetListing returns a listing by id
func (r *MemoryRepo) GetListing(_ context.Context, listingID string) (models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return listing, nil
}

// GetUserBid returns the outstanding bid of a user on a listing
func (r *MemoryRepo) GetUserBid(_ context.Context, listingID, userID string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bids[listingID] {
		if b.UserID == userID {
			return b, nil
		}
	}
	return models.Bid{}, fmt.Errorf("get bid of user %s on listing %s: %w", userID, listingID, auctionerrors.ErrBidNotFound)
}

// GetWinningBid returns the highest bid for a listing. Equal prices go to the earliest bid.
func (r *MemoryRepo) GetWinningBid(_ context.Context, listingID string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.bids[listingID]
	if len(bids) == 0 {
		return models.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Price.GreaterThan(winning.Price) || (b.Price.Equal(winning.Price) && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, nil
}

// SaveBid creates the bid or replaces the price of the bidder's existing one.
// It reports true when a new bid record was created.
func (r *MemoryRepo) SaveBid(_ context.Context, bid models.Bid) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[bid.ListingID]
	if !ok {
		return false, fmt.Errorf("save bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}
	if listing.IsSoldOut {
		return false, fmt.Errorf("save bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingSoldOut)
	}

	bids := r.bids[bid.ListingID]
	for i, existing := range bids {
		if existing.UserID == bid.UserID {
			existing.Price = bid.Price
			existing.UpdatedAt = bid.UpdatedAt
			bids[i] = existing
			return false, nil
		}
	}
	r.bids[bid.ListingID] = append(bids, bid)
	return true, nil
}

// GetBidHistory returns all bids for a listing, most recently updated first
func (r *MemoryRepo) GetBidHistory(_ context.Context, listingID string) ([]models.BidDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.bids[listingID]
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bid history for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}

	listing := r.listings[listingID]
	history := make([]models.BidDetail, 0, len(bids))
	for _, b := range bids {
		bidder := models.UserProfile{UserID: b.UserID}
		if u, ok := r.users[b.UserID]; ok {
			bidder = u.Profile()
		}
		history = append(history, models.BidDetail{Bid: b, Bidder: bidder, Listing: listing})
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].UpdatedAt.After(history[j].UpdatedAt)
	})
	return history, nil
}

// SettleListing marks the listing sold and moves the balances of one sale.
// Every precondition is checked before the first mutation so the sale applies fully or not at all.
func (r *MemoryRepo) SettleListing(_ context.Context, s models.Settlement) (models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[s.ListingID]
	if !ok {
		return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, auctionerrors.ErrListingNotFound)
	}
	if listing.IsSoldOut {
		return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, auctionerrors.ErrListingSoldOut)
	}
	seller, ok := r.users[s.SellerID]
	if !ok {
		return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, auctionerrors.ErrSellerNotFound)
	}
	var admin models.User
	if s.AdminID != "" {
		if admin, ok = r.users[s.AdminID]; !ok {
			return models.Listing{}, fmt.Errorf("settle listing %s: admin %s: %w", s.ListingID, s.AdminID, auctionerrors.ErrUserNotFound)
		}
	}

	now := time.Now().UTC()
	listing.IsSoldOut = true
	listing.SoldTo = s.BuyerID
	listing.UpdatedAt = now
	r.listings[s.ListingID] = listing

	if s.AdminID != "" {
		admin.CommissionBalance = admin.CommissionBalance.Add(s.CommissionAmount)
		admin.UpdatedAt = now
		r.users[admin.UserID] = admin
		if admin.UserID == seller.UserID {
			seller = admin
		}
	}

	seller.Balance = seller.Balance.Add(s.Payout)
	seller.UpdatedAt = now
	r.users[seller.UserID] = seller

	return listing, nil
}

// CreateListing stores a new listing
func (r *MemoryRepo) CreateListing(_ context.Context, listing models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ListingID == "" {
		return fmt.Errorf("create listing: %w", auctionerrors.ErrInvalidListing)
	}
	r.listings[listing.ListingID] = listing
	return nil
}

// UpdateListing replaces a stored listing
func (r *MemoryRepo) UpdateListing(_ context.Context, listing models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ListingID]; !ok {
		return fmt.Errorf("update listing %s: %w", listing.ListingID, auctionerrors.ErrListingNotFound)
	}
	r.listings[listing.ListingID] = listing
	return nil
}

// DeleteListing removes a listing and its bids
func (r *MemoryRepo) DeleteListing(_ context.Context, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listingID]; !ok {
		return fmt.Errorf("delete listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	delete(r.listings, listingID)
	delete(r.bids, listingID)
	return nil
}

// ListListings returns the listings matching filter, newest first
func (r *MemoryRepo) ListListings(_ context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]models.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if r.matchesFilter(l, filter) {
			listings = append(listings, l)
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

// CountListings returns the number of listings matching filter
func (r *MemoryRepo) CountListings(_ context.Context, filter models.ListingFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, l := range r.listings {
		if r.matchesFilter(l, filter) {
			count++
		}
	}
	return count, nil
}

// matchesFilter expects r.mu to be held
func (r *MemoryRepo) matchesFilter(l models.Listing, f models.ListingFilter) bool {
	if f.SellerID != "" && l.SellerID != f.SellerID {
		return false
	}
	if f.SoldTo != "" && l.SoldTo != f.SoldTo {
		return false
	}
	if f.SoldOut != nil && l.IsSoldOut != *f.SoldOut {
		return false
	}
	if f.BidderID != "" && !r.hasBid(l.ListingID, f.BidderID) {
		return false
	}
	return true
}

func (r *MemoryRepo) hasBid(listingID, userID string) bool {
	for _, b := range r.bids[listingID] {
		if b.UserID == userID {
			return true
		}
	}
	return false
}

// CountBids returns the number of bid records on a listing
func (r *MemoryRepo) CountBids(_ context.Context, listingID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bids[listingID]), nil
}

// CreateUser stores a new user. Emails are unique regardless of case.
func (r *MemoryRepo) CreateUser(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := r.emails[key]; taken {
		return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrEmailTaken)
	}
	r.users[user.UserID] = user
	r.emails[key] = user.UserID
	return nil
}

// GetUser returns a user by id
func (r *MemoryRepo) GetUser(_ context.Context, userID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// UpdateAvatar replaces the avatar URL of a user and returns the stored account
func (r *MemoryRepo) UpdateAvatar(_ context.Context, userID, avatarURL string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("update avatar of user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	user.AvatarURL = avatarURL
	user.UpdatedAt = time.Now().UTC()
	r.users[userID] = user
	return user, nil
}

// GetUserByEmail returns a user by email, ignoring case
func (r *MemoryRepo) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[strings.ToLower(email)]
	if !ok {
		return models.User{}, fmt.Errorf("get user by email %s: %w", email, auctionerrors.ErrUserNotFound)
	}
	return r.users[id], nil
}

// FindAdmin returns the earliest created admin account
func (r *MemoryRepo) FindAdmin(_ context.Context) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var admin models.User
	found := false
	for _, u := range r.users {
		if !u.IsAdmin() {
			continue
		}
		if !found || u.CreatedAt.Before(admin.CreatedAt) {
			admin = u
			found = true
		}
	}
	if !found {
		return models.User{}, fmt.Errorf("find admin: %w", auctionerrors.ErrUserNotFound)
	}
	return admin, nil
}

// ListUsers returns all users, oldest first
func (r *MemoryRepo) ListUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// CreateMessage stores a contact message
func (r *MemoryRepo) CreateMessage(_ context.Context, msg models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

// ListMessages returns all contact messages, newest first
func (r *MemoryRepo) ListMessages(_ context.Context) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := append([]models.Message(nil), r.messages...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

// AddListing adds a listing to the repository. This method is intended for seeding and tests.
func (r *MemoryRepo) AddListing(listing models.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ListingID] = listing
}

// AddUser adds a user to the repository. This method is intended for seeding and tests.
func (r *MemoryRepo) AddUser(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UserID] = user
	r.emails[strings.ToLower(user.Email)] = user.UserID
}
