package handler

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

import (
	"context"
	"net/http"

	"auction-market/internal/models"
	settlement "auction-market/internal/settlementService"
	"auction-market/services/helpers"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, listingID, userID string, price decimal.Decimal) (models.Bid, bool, error)
	GetBidHistory(ctx context.Context, listingID string) ([]models.BidDetail, error)
	GetWinningBid(ctx context.Context, listingID string) (models.Bid, error)
}

type SettlementServiceInterface interface {
	Sell(ctx context.Context, listingID string, requester models.Identity) (settlement.Result, error)
}

type BiddingHandler struct {
	service    BiddingServiceInterface
	settlement SettlementServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface, settlement SettlementServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service, settlement: settlement}
}

// PlaceBidHandler handles POST /biddings/:id
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "PlaceBidHandler")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	listingID := c.Param("id")
	bid, created, err := h.service.PlaceBid(c.Request.Context(), listingID, identity.UserID, *req.Price)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", "failed to place bid", err, map[string]any{
			"listing_id": listingID,
			"user_id":    identity.UserID,
			"price":      req.Price.String(),
		})
		return
	}

	status, message := http.StatusOK, "bid updated successfully"
	if created {
		status, message = http.StatusCreated, "bid placed successfully"
	}

	utils.JSONResponse(c, status, helpers.NewBidResponse(bid), message)
	helpers.LogSuccess("PlaceBidHandler", message, map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.UserID,
		"price":      bid.Price.String(),
	})
}

// GetBidHistoryHandler handles GET /biddings/:id
func (h *BiddingHandler) GetBidHistoryHandler(c *gin.Context) {
	listingID := c.Param("id")
	history, err := h.service.GetBidHistory(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetBidHistoryHandler", "error retrieving bids", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, history, "bidding history retrieved successfully")
	helpers.LogSuccess("GetBidHistoryHandler", "bidding history retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(history),
	})
}

// GetWinningBidHandler handles GET /biddings/:id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("id")
	bid, err := h.service.GetWinningBid(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetWinningBidHandler", "winning bid error", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.UserID,
		"price":      bid.Price.String(),
	})
}

// SellHandler handles PATCH /biddings/:id/sell
func (h *BiddingHandler) SellHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "SellHandler")
	if !ok {
		return
	}

	listingID := c.Param("id")
	result, err := h.settlement.Sell(c.Request.Context(), listingID, identity)
	if err != nil {
		helpers.RespondError(c, "SellHandler", "failed to sell listing", err, map[string]any{
			"listing_id": listingID,
			"user_id":    identity.UserID,
		})
		return
	}

	resp := helpers.SaleResponse{
		Listing:          result.Listing,
		WinningBid:       helpers.NewBidResponse(result.WinningBid),
		CommissionAmount: result.CommissionAmount,
		Payout:           result.Payout,
	}

	utils.JSONResponse(c, http.StatusOK, resp, "listing sold successfully")
	helpers.LogSuccess("SellHandler", "listing sold successfully", map[string]any{
		"listing_id": listingID,
		"buyer_id":   result.Listing.SoldTo,
		"price":      result.WinningBid.Price.String(),
	})
}
