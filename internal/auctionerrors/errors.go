package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoBids          = errors.New("no bids found for listing")
	ErrBidNotFound     = errors.New("user has not bid on listing")
	ErrEmailTaken      = errors.New("email already exists")
	ErrSellerNotFound  = errors.New("seller not found")
)

// business logic errors
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrListingSoldOut     = errors.New("listing is sold out")
	ErrListingNotVerified = errors.New("listing is not verified for bidding")
	ErrNoWinningBid       = errors.New("no winning bid found")
	ErrInvalidCommission  = errors.New("invalid commission rate")
	ErrInvalidListing     = errors.New("invalid listing details")
	ErrInvalidUser        = errors.New("invalid user details")
	ErrInvalidMessage     = errors.New("invalid message details")
	ErrUnknownEmail       = errors.New("no account found with this email")
)

// access errors
var (
	ErrUnauthorized       = errors.New("unauthorized request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("permission denied")
)
