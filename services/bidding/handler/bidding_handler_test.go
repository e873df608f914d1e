package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/auth"
	"auction-market/internal/models"
	settlement "auction-market/internal/settlementService"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type decimalMatcher struct{ want decimal.Decimal }

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return "is decimal " + m.want.String() }

func decimalEq(v int64) gomock.Matcher { return decimalMatcher{want: decimal.NewFromInt(v)} }

var caller = models.Identity{UserID: "user1", Email: "user1@example.com", Name: "User One", Role: models.RoleUser}

// withIdentity stands in for the auth middleware
func withIdentity(identity *models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			auth.SetIdentity(c, *identity)
		}
		c.Next()
	}
}

func newRouter(h *BiddingHandler, identity *models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/biddings/:id", h.GetBidHistoryHandler)
	router.GET("/biddings/:id/winning", h.GetWinningBidHandler)
	router.POST("/biddings/:id", withIdentity(identity), h.PlaceBidHandler)
	router.PATCH("/biddings/:id/sell", withIdentity(identity), h.SellHandler)
	return router
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService, NewMockSettlementServiceInterface(ctrl))
	router := newRouter(handler, &caller)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_created",
			requestBody: map[string]any{"price": 60},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "listing1", "user1", decimalEq(60)).
					Return(models.Bid{BidID: uuid.NewString(), ListingID: "listing1", UserID: "user1", Price: decimal.NewFromInt(60), CreatedAt: now, UpdatedAt: now}, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				_, parseErr := uuid.Parse(data["bid_id"].(string))
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "listing1", data["listing_id"])
				require.Equal(t, "user1", data["user_id"])
				require.Equal(t, "60", data["price"])
			},
		},
		{
			name:        "success_updated_string_price",
			requestBody: `{"price":"75"}`,
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "listing1", "user1", decimalEq(75)).
					Return(models.Bid{BidID: "b1", ListingID: "listing1", UserID: "user1", Price: decimal.NewFromInt(75), CreatedAt: now, UpdatedAt: now}, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bid updated successfully",
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "non_numeric_price",
			requestBody:    `{"price":"abc"}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_price",
			requestBody:    `{}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "bid_too_low_carries_minimum",
			requestBody: map[string]any{"price": 71},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "listing1", "user1", decimalEq(71)).
					Return(models.Bid{}, false, fmt.Errorf("service: %w - your bid must be higher than 71.00", auctionerrors.ErrBidTooLow))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "bid amount too low - your bid must be higher than 71.00",
		},
		{
			name:        "listing_not_found",
			requestBody: map[string]any{"price": 60},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "listing1", "user1", decimalEq(60)).
					Return(models.Bid{}, false, fmt.Errorf("service: failed to get listing listing1: %w", auctionerrors.ErrListingNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "listing not found",
		},
		{
			name:        "sold_out",
			requestBody: map[string]any{"price": 60},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "listing1", "user1", decimalEq(60)).
					Return(models.Bid{}, false, fmt.Errorf("service: %w - bidding is closed", auctionerrors.ErrListingSoldOut))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "internal_error",
			requestBody: map[string]any{"price": 60},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "listing1", "user1", decimalEq(60)).
					Return(models.Bid{}, false, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			var body []byte
			switch v := tc.requestBody.(type) {
			case string:
				body = []byte(v)
			default:
				var err error
				body, err = json.Marshal(v)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/biddings/listing1", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decode(t, w)
			require.Equal(t, float64(tc.expectedStatus), resp["status"])
			if tc.expectedMsg != "" {
				require.Equal(t, tc.expectedMsg, resp["message"])
			}
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func TestPlaceBidHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewBiddingHandler(NewMockBiddingServiceInterface(ctrl), NewMockSettlementServiceInterface(ctrl))
	router := newRouter(handler, nil)

	req := httptest.NewRequest(http.MethodPost, "/biddings/listing1", bytes.NewBufferString(`{"price":60}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test GetBidHistoryHandler
func TestGetBidHistoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newRouter(NewBiddingHandler(mockService, nil), nil)

	mockService.EXPECT().GetBidHistory(gomock.Any(), "listing1").Return([]models.BidDetail{
		{Bid: models.Bid{BidID: "b2", UserID: "u2", Price: decimal.NewFromInt(75)}, Bidder: models.UserProfile{UserID: "u2", Name: "Bea"}},
		{Bid: models.Bid{BidID: "b1", UserID: "u1", Price: decimal.NewFromInt(70)}},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biddings/listing1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	data := resp["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	require.Equal(t, "b2", first["bid_id"])
	require.Equal(t, "Bea", first["bidder"].(map[string]any)["name"])

	mockService.EXPECT().GetBidHistory(gomock.Any(), "listing2").Return(nil, fmt.Errorf("service: %w", auctionerrors.ErrNoBids))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biddings/listing2", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "no bidding history found", decode(t, w)["message"])
}

// Test GetWinningBidHandler
func TestGetWinningBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newRouter(NewBiddingHandler(mockService, nil), nil)

	mockService.EXPECT().GetWinningBid(gomock.Any(), "listing1").Return(models.Bid{BidID: "b1", ListingID: "listing1", UserID: "u1", Price: decimal.NewFromInt(90)}, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biddings/listing1/winning", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "90", decode(t, w)["data"].(map[string]any)["price"])

	mockService.EXPECT().GetWinningBid(gomock.Any(), "listing2").Return(models.Bid{}, auctionerrors.ErrNoBids)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biddings/listing2/winning", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Test SellHandler
func TestSellHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettlement := NewMockSettlementServiceInterface(ctrl)
	router := newRouter(NewBiddingHandler(NewMockBiddingServiceInterface(ctrl), mockSettlement), &caller)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "sold",
			mockSetup: func() {
				mockSettlement.EXPECT().Sell(gomock.Any(), "listing1", caller).Return(settlement.Result{
					Listing:          models.Listing{ListingID: "listing1", IsSoldOut: true, SoldTo: "buyer"},
					WinningBid:       models.Bid{BidID: "b1", UserID: "buyer", Price: decimal.NewFromInt(100)},
					CommissionAmount: decimal.NewFromInt(10),
					Payout:           decimal.NewFromInt(90),
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not_owner",
			mockSetup: func() {
				mockSettlement.EXPECT().Sell(gomock.Any(), "listing1", caller).Return(settlement.Result{}, fmt.Errorf("service: %w", auctionerrors.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "no_bids",
			mockSetup: func() {
				mockSettlement.EXPECT().Sell(gomock.Any(), "listing1", caller).Return(settlement.Result{}, fmt.Errorf("service: %w", auctionerrors.ErrNoWinningBid))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not_verified",
			mockSetup: func() {
				mockSettlement.EXPECT().Sell(gomock.Any(), "listing1", caller).Return(settlement.Result{}, fmt.Errorf("service: %w", auctionerrors.ErrListingNotVerified))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "seller_missing",
			mockSetup: func() {
				mockSettlement.EXPECT().Sell(gomock.Any(), "listing1", caller).Return(settlement.Result{}, fmt.Errorf("service: %w", auctionerrors.ErrSellerNotFound))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/biddings/listing1/sell", nil))
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusOK {
				data := decode(t, w)["data"].(map[string]any)
				require.Equal(t, "10", data["commission_amount"])
				require.Equal(t, "90", data["payout"])
				require.Equal(t, "buyer", data["listing"].(map[string]any)["sold_to"])
			}
		})
	}
}
