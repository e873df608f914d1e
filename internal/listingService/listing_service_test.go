package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/models"
	"auction-market/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr[T any](v T) *T { return &v }

var (
	seller = models.Identity{UserID: "seller", Role: models.RoleUser}
	other  = models.Identity{UserID: "other", Role: models.RoleUser}
	admin  = models.Identity{UserID: "admin", Role: models.RoleAdmin}
)

func newService(autoVerify bool) (*ListingService, *repository.MemoryRepo) {
	repo := repository.NewMemoryRepo()
	return NewListingService(repo, nil, autoVerify), repo
}

func TestListingService_Create(t *testing.T) {
	service, _ := newService(true)
	ctx := context.Background()

	tests := []struct {
		name          string
		seller        models.Identity
		input         CreateInput
		expectedError error
	}{
		{
			name:   "valid",
			seller: seller,
			input:  CreateInput{Title: "  Lamp ", Description: "Brass lamp", Price: d(50), Height: ptr(d(30))},
		},
		{
			name:          "missing_title",
			seller:        seller,
			input:         CreateInput{Title: "   ", Description: "Brass lamp", Price: d(50)},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "zero_price",
			seller:        seller,
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: decimal.Zero},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "negative_dimension",
			seller:        seller,
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: d(5), Weight: ptr(d(-1))},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "price_with_five_decimals",
			seller:        seller,
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: decimal.RequireFromString("5.00001")},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "price_with_huge_exponent",
			seller:        seller,
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: decimal.RequireFromString("1e3000000")},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "price_over_sixteen_integer_digits",
			seller:        seller,
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: decimal.RequireFromString("12345678901234567")},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "dimension_with_huge_exponent",
			seller:        seller,
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: d(5), Height: ptr(decimal.RequireFromString("1e3000000"))},
			expectedError: auctionerrors.ErrInvalidListing,
		},
		{
			name:          "anonymous_seller",
			seller:        models.Identity{},
			input:         CreateInput{Title: "Lamp", Description: "Brass lamp", Price: d(5)},
			expectedError: auctionerrors.ErrUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			listing, err := service.Create(ctx, tc.seller, tc.input)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, listing.ListingID)
			require.Equal(t, "Lamp", listing.Title)
			require.Equal(t, "All", listing.Category)
			require.True(t, listing.Commission.IsZero())
			require.True(t, listing.IsVerify)
			require.Equal(t, tc.seller.UserID, listing.SellerID)
		})
	}
}

func TestListingService_CreateWithoutAutoVerify(t *testing.T) {
	service, _ := newService(false)
	listing, err := service.Create(context.Background(), seller, CreateInput{Title: "Lamp", Description: "Brass", Category: "Home", Price: d(10)})
	require.NoError(t, err)
	require.False(t, listing.IsVerify)
	require.Equal(t, "Home", listing.Category)
}

func TestListingService_Update(t *testing.T) {
	service, repo := newService(true)
	ctx := context.Background()

	listing, err := service.Create(ctx, seller, CreateInput{Title: "Lamp", Description: "Brass", Price: d(50)})
	require.NoError(t, err)

	_, err = service.Update(ctx, other, listing.ListingID, UpdateInput{Title: ptr("Mine")})
	require.ErrorIs(t, err, auctionerrors.ErrForbidden)

	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Description: ptr(" ")})
	require.ErrorIs(t, err, auctionerrors.ErrInvalidListing)

	updated, err := service.Update(ctx, seller, listing.ListingID, UpdateInput{Title: ptr("Desk Lamp"), Price: ptr(d(55)), Width: ptr(d(12))})
	require.NoError(t, err)
	require.Equal(t, "Desk Lamp", updated.Title)
	require.Equal(t, "Brass", updated.Description)
	require.True(t, updated.Price.Equal(d(55)))
	require.True(t, updated.Width.Equal(d(12)))

	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Price: ptr(decimal.RequireFromString("1e3000000"))})
	require.ErrorIs(t, err, auctionerrors.ErrInvalidListing)
	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Price: ptr(decimal.RequireFromString("55.00001"))})
	require.ErrorIs(t, err, auctionerrors.ErrInvalidListing)
	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Length: ptr(decimal.RequireFromString("0.12345"))})
	require.ErrorIs(t, err, auctionerrors.ErrInvalidListing)

	_, err = repo.SaveBid(ctx, models.Bid{BidID: "b1", ListingID: listing.ListingID, UserID: "buyer", Price: d(70), CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Price: ptr(d(60))})
	require.ErrorIs(t, err, auctionerrors.ErrInvalidListing)

	// same price is not a change
	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Price: ptr(d(55)), Category: ptr("Lighting")})
	require.NoError(t, err)

	stored, err := repo.GetListing(ctx, listing.ListingID)
	require.NoError(t, err)
	stored.IsSoldOut = true
	require.NoError(t, repo.UpdateListing(ctx, stored))

	_, err = service.Update(ctx, seller, listing.ListingID, UpdateInput{Title: ptr("Sold Lamp")})
	require.ErrorIs(t, err, auctionerrors.ErrListingSoldOut)

	_, err = service.Update(ctx, seller, "missing", UpdateInput{})
	require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
}

func TestListingService_Delete(t *testing.T) {
	service, _ := newService(true)
	ctx := context.Background()

	first, err := service.Create(ctx, seller, CreateInput{Title: "Lamp", Description: "Brass", Price: d(50)})
	require.NoError(t, err)
	second, err := service.Create(ctx, seller, CreateInput{Title: "Vase", Description: "Glass", Price: d(20)})
	require.NoError(t, err)

	require.ErrorIs(t, service.Delete(ctx, other, first.ListingID), auctionerrors.ErrForbidden)
	require.NoError(t, service.Delete(ctx, seller, first.ListingID))
	require.NoError(t, service.Delete(ctx, admin, second.ListingID))
	require.ErrorIs(t, service.Delete(ctx, seller, first.ListingID), auctionerrors.ErrListingNotFound)
}

func TestListingService_Verify(t *testing.T) {
	service, _ := newService(false)
	ctx := context.Background()

	listing, err := service.Create(ctx, seller, CreateInput{Title: "Lamp", Description: "Brass", Price: d(50)})
	require.NoError(t, err)

	_, err = service.Verify(ctx, listing.ListingID, d(101))
	require.ErrorIs(t, err, auctionerrors.ErrInvalidCommission)
	_, err = service.Verify(ctx, listing.ListingID, d(-1))
	require.ErrorIs(t, err, auctionerrors.ErrInvalidCommission)
	_, err = service.Verify(ctx, listing.ListingID, decimal.RequireFromString("7.12345"))
	require.ErrorIs(t, err, auctionerrors.ErrInvalidCommission)
	_, err = service.Verify(ctx, listing.ListingID, decimal.RequireFromString("1e-3000000"))
	require.ErrorIs(t, err, auctionerrors.ErrInvalidCommission)

	verified, err := service.Verify(ctx, listing.ListingID, d(10))
	require.NoError(t, err)
	require.True(t, verified.IsVerify)
	require.True(t, verified.Commission.Equal(d(10)))

	_, err = service.Verify(ctx, "missing", d(10))
	require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
}

func TestListingService_Queries(t *testing.T) {
	repo := repository.NewMemoryRepo()
	service := NewListingService(repo, nil, true)
	ctx := context.Background()
	now := time.Now().UTC()

	repo.AddListing(models.Listing{ListingID: "old", SellerID: "seller", Price: d(10), CreatedAt: now.Add(-time.Hour)})
	repo.AddListing(models.Listing{ListingID: "new", SellerID: "seller", Price: d(20), CreatedAt: now})
	repo.AddListing(models.Listing{ListingID: "won", SellerID: "someone", Price: d(30), IsSoldOut: true, SoldTo: "buyer", CreatedAt: now.Add(-2 * time.Hour)})

	_, err := repo.SaveBid(ctx, models.Bid{BidID: "b1", ListingID: "old", UserID: "u1", Price: d(15), CreatedAt: now})
	require.NoError(t, err)
	_, err = repo.SaveBid(ctx, models.Bid{BidID: "b2", ListingID: "old", UserID: "u2", Price: d(17), CreatedAt: now})
	require.NoError(t, err)

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "new", all[0].ListingID)
	require.Equal(t, "old", all[1].ListingID)
	require.True(t, all[0].BiddingPrice.Equal(d(20)))
	require.True(t, all[1].BiddingPrice.Equal(d(17)))
	require.Equal(t, 2, all[1].TotalBids)

	mine, err := service.ListBySeller(ctx, "seller")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	won, err := service.ListWon(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, won, 1)
	require.Equal(t, "won", won[0].ListingID)

	none, err := service.ListWon(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, none)

	bidOn, err := service.ListBidOn(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, bidOn, 1)
	require.Equal(t, "old", bidOn[0].ListingID)
	require.True(t, bidOn[0].BiddingPrice.Equal(d(17)))

	_, err = service.ListBidOn(ctx, "")
	require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)

	one, err := service.Get(ctx, "old")
	require.NoError(t, err)
	require.True(t, one.BiddingPrice.Equal(d(17)))

	_, err = service.Get(ctx, "missing")
	require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
}

func TestListingService_SummaryRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMockListingDB(ctrl)
	service := NewListingService(repo, nil, true)

	repo.EXPECT().ListListings(gomock.Any(), models.ListingFilter{}).Return([]models.Listing{{ListingID: "l1"}}, nil)
	repo.EXPECT().GetWinningBid(gomock.Any(), "l1").Return(models.Bid{}, errors.New("db down"))

	_, err := service.ListAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "db down")
}
