package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/auth"
	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"

	"github.com/shopspring/decimal"
)

// Demo credentials created by SeedDemoData
const (
	DemoAdminEmail     = "admin@auction.local"
	DemoAdminPassword  = "admin1234"
	DemoSellerEmail    = "seller@auction.local"
	DemoSellerPassword = "seller1234"
)

type seedStore interface {
	repository.UserDB
	repository.ListingDB
}

// SeedDemoData creates an admin, a seller and a few verified listings.
// It does nothing when the admin account already exists.
func SeedDemoData(ctx context.Context, store seedStore) error {
	if _, err := store.GetUserByEmail(ctx, DemoAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, auctionerrors.ErrUserNotFound) {
		return fmt.Errorf("seed: lookup admin: %w", err)
	}

	now := time.Now().UTC()
	admin, err := demoUser("Admin", DemoAdminEmail, DemoAdminPassword, models.RoleAdmin, now)
	if err != nil {
		return err
	}
	seller, err := demoUser("Demo Seller", DemoSellerEmail, DemoSellerPassword, models.RoleUser, now)
	if err != nil {
		return err
	}
	for _, u := range []models.User{admin, seller} {
		if err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed: create user %s: %w", u.Email, err)
		}
	}

	listings := []struct {
		title, description string
		price              int64
	}{
		{"Vintage camera", "Working 35mm rangefinder", 100},
		{"Oak writing desk", "Solid oak, minor scratches", 200},
		{"Signed vinyl record", "First pressing, signed sleeve", 150},
	}
	for _, l := range listings {
		err := store.CreateListing(ctx, models.Listing{
			ListingID:   utils.GenerateID(),
			SellerID:    seller.UserID,
			Title:       l.title,
			Description: l.description,
			Category:    "All",
			Price:       decimal.NewFromInt(l.price),
			Commission:  decimal.NewFromInt(10),
			IsVerify:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("seed: create listing %q: %w", l.title, err)
		}
	}

	utils.Info("demo data seeded", map[string]any{"admin": DemoAdminEmail, "seller": DemoSellerEmail, "listings": len(listings)})
	return nil
}

func demoUser(name, email, password string, role models.Role, now time.Time) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("seed: hash password: %w", err)
	}
	return models.User{
		UserID:            utils.GenerateID(),
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		Balance:           decimal.Zero,
		CommissionBalance: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
