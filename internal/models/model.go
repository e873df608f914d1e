package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role distinguishes marketplace administrators from regular users
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a marketplace account together with its ledger balances
type User struct {
	UserID            string          `json:"user_id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	PasswordHash      string          `json:"-"`
	AvatarURL         string          `json:"avatar_url"`
	Role              Role            `json:"role"`
	Balance           decimal.Decimal `json:"balance"`
	CommissionBalance decimal.Decimal `json:"commission_balance"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile returns the public view of the user
func (u User) Profile() UserProfile {
	return UserProfile{UserID: u.UserID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL}
}

// UserProfile is the part of a user exposed next to bids and listings
type UserProfile struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Identity is the authenticated caller of a request
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// IsAdmin reports whether the caller holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Listing represents an item offered for auction
type Listing struct {
	ListingID   string           `json:"listing_id"`
	SellerID    string           `json:"seller_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Commission  decimal.Decimal  `json:"commission"`
	Height      *decimal.Decimal `json:"height,omitempty"`
	Length      *decimal.Decimal `json:"length,omitempty"`
	Width       *decimal.Decimal `json:"width,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	IsVerify    bool             `json:"is_verify"`
	IsSoldOut   bool             `json:"is_sold_out"`
	SoldTo      string           `json:"sold_to,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ListingFilter narrows listing queries. Empty fields match everything.
type ListingFilter struct {
	SellerID string
	SoldTo   string
	SoldOut  *bool
	// BidderID keeps listings the user holds a bid on
	BidderID string
}

// ListingSummary is a listing enriched with its current bidding state
type ListingSummary struct {
	Listing
	BiddingPrice decimal.Decimal `json:"bidding_price"`
	TotalBids    int             `json:"total_bids"`
}

// Bid represents a user's single outstanding offer on a listing
type Bid struct {
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BidDetail is a bid expanded with its bidder and listing
type BidDetail struct {
	Bid
	Bidder  UserProfile `json:"bidder"`
	Listing Listing     `json:"listing"`
}

// Settlement describes the balance movements of one completed sale
type Settlement struct {
	ListingID        string
	SellerID         string
	BuyerID          string
	AdminID          string // empty when no admin account receives the commission
	Price            decimal.Decimal
	CommissionAmount decimal.Decimal
	Payout           decimal.Decimal
}

// UserStats summarizes an account's marketplace activity
type UserStats struct {
	Balance           decimal.Decimal `json:"balance"`
	CommissionBalance decimal.Decimal `json:"commission_balance"`
	ProductsCreated   int             `json:"products_created"`
	ItemsWon          int             `json:"items_won"`
}

// MessageSubject is the topic of a contact message
type MessageSubject string

const (
	SubjectAuction MessageSubject = "auction"
	SubjectAccount MessageSubject = "account"
	SubjectSeller  MessageSubject = "seller"
	SubjectOther   MessageSubject = "other"
	SubjectNone    MessageSubject = ""
)

// Valid reports whether the subject is one of the accepted topics
func (s MessageSubject) Valid() bool {
	switch s {
	case SubjectAuction, SubjectAccount, SubjectSeller, SubjectOther, SubjectNone:
		return true
	}
	return false
}

// Message is a contact-form submission
type Message struct {
	MessageID string         `json:"message_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   MessageSubject `json:"subject"`
	Message   string         `json:"message"`
	CreatedAt time.Time      `json:"created_at"`
}
