package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/auth"
	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"

	"github.com/shopspring/decimal"
)

const (
	minPasswordLength  = 4
	maxAvatarURLLength = 2048
)

// RegisterInput holds the sign-up form
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Session is an authenticated user together with its access token
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// AccountService manages user accounts and their ledger view
type AccountService struct {
	users    repository.UserDB
	listings repository.ListingDB
	secret   []byte
	tokenTTL time.Duration
}

// NewAccountService creates an AccountService. Tokens are signed with secret and expire after tokenTTL.
func NewAccountService(users repository.UserDB, listings repository.ListingDB, secret []byte, tokenTTL time.Duration) *AccountService {
	return &AccountService{users: users, listings: listings, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a regular user account and signs the caller in
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return Session{}, fmt.Errorf("service: %w - all fields are required", auctionerrors.ErrInvalidUser)
	}
	if in.Password != in.ConfirmPassword {
		return Session{}, fmt.Errorf("service: %w - passwords do not match", auctionerrors.ErrInvalidUser)
	}
	if len(in.Password) < minPasswordLength {
		return Session{}, fmt.Errorf("service: %w - password must be at least %d characters", auctionerrors.ErrInvalidUser, minPasswordLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return Session{}, fmt.Errorf("service: %w - invalid email address", auctionerrors.ErrInvalidUser)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("service: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:            utils.GenerateID(),
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		Role:              models.RoleUser,
		Balance:           decimal.Zero,
		CommissionBalance: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return Session{}, fmt.Errorf("service: failed to register %s: %w", email, err)
	}

	return s.session(user)
}

// Login verifies the credentials and issues a new access token
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("service: %w - email and password are required", auctionerrors.ErrInvalidUser)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return Session{}, fmt.Errorf("service: %w", auctionerrors.ErrUnknownEmail)
		}
		return Session{}, fmt.Errorf("service: failed to load account %s: %w", email, err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return Session{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	return s.session(user)
}

// CurrentUser returns the stored account of the caller
func (s *AccountService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateAvatar sets the profile image of the caller. The image is referenced by an absolute http(s) URL.
func (s *AccountService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (models.User, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return models.User{}, fmt.Errorf("service: %w - avatar_url is required", auctionerrors.ErrInvalidUser)
	}
	if len(avatarURL) > maxAvatarURLLength {
		return models.User{}, fmt.Errorf("service: %w - avatar_url is longer than %d characters", auctionerrors.ErrInvalidUser, maxAvatarURLLength)
	}
	u, err := url.Parse(avatarURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.User{}, fmt.Errorf("service: %w - avatar_url must be an absolute http or https URL", auctionerrors.ErrInvalidUser)
	}

	user, err := s.users.UpdateAvatar(ctx, userID, avatarURL)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to update avatar of %s: %w", userID, err)
	}
	return user, nil
}

// Stats summarizes the caller's balances and marketplace activity
func (s *AccountService) Stats(ctx context.Context, userID string) (models.UserStats, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("service: failed to get user %s: %w", userID, err)
	}

	created, err := s.listings.CountListings(ctx, models.ListingFilter{SellerID: userID})
	if err != nil {
		return models.UserStats{}, fmt.Errorf("service: failed to count listings of %s: %w", userID, err)
	}

	soldOut := true
	won, err := s.listings.CountListings(ctx, models.ListingFilter{SoldTo: userID, SoldOut: &soldOut})
	if err != nil {
		return models.UserStats{}, fmt.Errorf("service: failed to count won listings of %s: %w", userID, err)
	}

	return models.UserStats{
		Balance:           user.Balance,
		CommissionBalance: user.CommissionBalance,
		ProductsCreated:   created,
		ItemsWon:          won,
	}, nil
}

// ListUsers returns every account. An empty store is reported as not found.
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("service: %w - no users found", auctionerrors.ErrUserNotFound)
	}
	return users, nil
}

func (s *AccountService) session(user models.User) (Session, error) {
	token, err := auth.IssueToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return Session{}, fmt.Errorf("service: %w", err)
	}
	return Session{User: user, Token: token}, nil
}
