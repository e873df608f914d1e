package handler

//go:generate mockgen -source=listing_handler.go -destination=mock_listing_handler.go -package=handler

import (
	"context"
	"net/http"

	listing "auction-market/internal/listingService"
	"auction-market/internal/models"
	"auction-market/services/helpers"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ListingServiceInterface interface {
	Create(ctx context.Context, seller models.Identity, in listing.CreateInput) (models.Listing, error)
	Update(ctx context.Context, requester models.Identity, listingID string, in listing.UpdateInput) (models.Listing, error)
	Delete(ctx context.Context, requester models.Identity, listingID string) error
	Verify(ctx context.Context, listingID string, commission decimal.Decimal) (models.Listing, error)
	Get(ctx context.Context, listingID string) (models.ListingSummary, error)
	ListAll(ctx context.Context) ([]models.ListingSummary, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.ListingSummary, error)
	ListWon(ctx context.Context, userID string) ([]models.ListingSummary, error)
	ListBidOn(ctx context.Context, userID string) ([]models.ListingSummary, error)
}

type ListingHandler struct {
	service ListingServiceInterface
}

func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// CreateListingHandler handles POST /products
func (h *ListingHandler) CreateListingHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "CreateListingHandler")
	if !ok {
		return
	}

	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), identity, listing.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       *req.Price,
		Height:      req.Height,
		Length:      req.Length,
		Width:       req.Width,
		Weight:      req.Weight,
	})
	if err != nil {
		helpers.RespondError(c, "CreateListingHandler", "failed to create listing", err, map[string]any{"seller_id": identity.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": created.ListingID,
		"seller_id":  created.SellerID,
	})
}

// UpdateListingHandler handles PUT /products/:id
func (h *ListingHandler) UpdateListingHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "UpdateListingHandler")
	if !ok {
		return
	}

	var req helpers.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateListingHandler", err)
		return
	}

	listingID := c.Param("id")
	updated, err := h.service.Update(c.Request.Context(), identity, listingID, listing.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
		Height:      req.Height,
		Length:      req.Length,
		Width:       req.Width,
		Weight:      req.Weight,
	})
	if err != nil {
		helpers.RespondError(c, "UpdateListingHandler", "failed to update listing", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, updated, "listing updated successfully")
	helpers.LogSuccess("UpdateListingHandler", "listing updated successfully", map[string]any{"listing_id": listingID})
}

// DeleteListingHandler handles DELETE /products/:id
func (h *ListingHandler) DeleteListingHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "DeleteListingHandler")
	if !ok {
		return
	}

	listingID := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), identity, listingID); err != nil {
		helpers.RespondError(c, "DeleteListingHandler", "failed to delete listing", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing deleted successfully")
	helpers.LogSuccess("DeleteListingHandler", "listing deleted successfully", map[string]any{
		"listing_id": listingID,
		"user_id":    identity.UserID,
	})
}

// VerifyListingHandler handles PATCH /products/commission/:id
func (h *ListingHandler) VerifyListingHandler(c *gin.Context) {
	var req helpers.VerifyListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "VerifyListingHandler", err)
		return
	}

	listingID := c.Param("id")
	verified, err := h.service.Verify(c.Request.Context(), listingID, *req.Commission)
	if err != nil {
		helpers.RespondError(c, "VerifyListingHandler", "failed to verify listing", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, verified, "listing verified successfully")
	helpers.LogSuccess("VerifyListingHandler", "listing verified successfully", map[string]any{
		"listing_id": listingID,
		"commission": verified.Commission.String(),
	})
}

// GetListingHandler handles GET /products/:id
func (h *ListingHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("id")
	summary, err := h.service.Get(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetListingHandler", "error retrieving listing", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, summary, "listing retrieved successfully")
}

// ListListingsHandler handles GET /products
func (h *ListingHandler) ListListingsHandler(c *gin.Context) {
	listings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListListingsHandler", "error listing listings", err, nil)
		return
	}
	respondList(c, "ListListingsHandler", listings, "listings retrieved successfully")
}

// ListOwnListingsHandler handles GET /products/user
func (h *ListingHandler) ListOwnListingsHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "ListOwnListingsHandler")
	if !ok {
		return
	}

	listings, err := h.service.ListBySeller(c.Request.Context(), identity.UserID)
	if err != nil {
		helpers.RespondError(c, "ListOwnListingsHandler", "error listing own listings", err, map[string]any{"user_id": identity.UserID})
		return
	}
	respondList(c, "ListOwnListingsHandler", listings, "your listings retrieved successfully")
}

// ListWonListingsHandler handles GET /products/won
func (h *ListingHandler) ListWonListingsHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "ListWonListingsHandler")
	if !ok {
		return
	}

	listings, err := h.service.ListWon(c.Request.Context(), identity.UserID)
	if err != nil {
		helpers.RespondError(c, "ListWonListingsHandler", "error listing won listings", err, map[string]any{"user_id": identity.UserID})
		return
	}
	respondList(c, "ListWonListingsHandler", listings, "won listings retrieved successfully")
}

// ListBidListingsHandler handles GET /products/bids
func (h *ListingHandler) ListBidListingsHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "ListBidListingsHandler")
	if !ok {
		return
	}

	listings, err := h.service.ListBidOn(c.Request.Context(), identity.UserID)
	if err != nil {
		helpers.RespondError(c, "ListBidListingsHandler", "error listing bid on listings", err, map[string]any{"user_id": identity.UserID})
		return
	}
	respondList(c, "ListBidListingsHandler", listings, "bid on listings retrieved successfully")
}

func respondList(c *gin.Context, handlerName string, listings []models.ListingSummary, message string) {
	if listings == nil {
		listings = []models.ListingSummary{}
	}
	if len(listings) == 0 {
		message = "no listings found"
	}
	utils.JSONResponse(c, http.StatusOK, listings, message)
	helpers.LogSuccess(handlerName, message, map[string]any{"count": len(listings)})
}
