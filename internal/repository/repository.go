package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"

	"auction-market/internal/models"
)

// AuctionDB defines the bid and settlement storage used by the auction core
type AuctionDB interface {
	GetListing(ctx context.Context, listingID string) (models.Listing, error)
	GetUserBid(ctx context.Context, listingID, userID string) (models.Bid, error)
	GetWinningBid(ctx context.Context, listingID string) (models.Bid, error)
	SaveBid(ctx context.Context, bid models.Bid) (bool, error)
	GetBidHistory(ctx context.Context, listingID string) ([]models.BidDetail, error)
	SettleListing(ctx context.Context, settlement models.Settlement) (models.Listing, error)
}

// ListingDB defines listing storage
type ListingDB interface {
	CreateListing(ctx context.Context, listing models.Listing) error
	GetListing(ctx context.Context, listingID string) (models.Listing, error)
	UpdateListing(ctx context.Context, listing models.Listing) error
	DeleteListing(ctx context.Context, listingID string) error
	ListListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	CountListings(ctx context.Context, filter models.ListingFilter) (int, error)
	GetWinningBid(ctx context.Context, listingID string) (models.Bid, error)
	CountBids(ctx context.Context, listingID string) (int, error)
}

// UserDB defines account storage
type UserDB interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (models.User, error)
	FindAdmin(ctx context.Context) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// MessageDB defines contact message storage
type MessageDB interface {
	CreateMessage(ctx context.Context, msg models.Message) error
	ListMessages(ctx context.Context) ([]models.Message, error)
}

// Store is the full persistence surface. MemoryRepo and PostgresRepo implement it.
type Store interface {
	AuctionDB
	ListingDB
	UserDB
	MessageDB
	Ping(ctx context.Context) error
	Close()
}
