package helpers

import (
	"time"

	"auction-market/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	Price *decimal.Decimal `json:"price" binding:"required"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// NewBidResponse formats a bid for the wire
func NewBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		UserID:    bid.UserID,
		Price:     bid.Price,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: bid.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type SaleResponse struct {
	Listing          models.Listing  `json:"listing"`
	WinningBid       BidResponse     `json:"winning_bid"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Payout           decimal.Decimal `json:"payout"`
}

type CreateListingRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description" binding:"required"`
	ImageURL    string           `json:"image_url"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Height      *decimal.Decimal `json:"height"`
	Length      *decimal.Decimal `json:"length"`
	Width       *decimal.Decimal `json:"width"`
	Weight      *decimal.Decimal `json:"weight"`
}

type UpdateListingRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Height      *decimal.Decimal `json:"height"`
	Length      *decimal.Decimal `json:"length"`
	Width       *decimal.Decimal `json:"width"`
	Weight      *decimal.Decimal `json:"weight"`
}

type VerifyListingRequest struct {
	Commission *decimal.Decimal `json:"commission" binding:"required"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateImageRequest struct {
	AvatarURL string `json:"avatar_url" binding:"required"`
}

type SessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type CreateMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
