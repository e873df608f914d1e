package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/models"
	"auction-market/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// PostgresRepo implements Store on PostgreSQL
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo connects to dsn and verifies the connection
func NewPostgresRepo(ctx context.Context, dsn string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &PostgresRepo{pool: pool}, nil
}

// NewPostgresRepoFromPool wraps an existing pool
func NewPostgresRepoFromPool(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

// Ping checks the database connection
func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the pool
func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func listingColumns(alias string) string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	cols := []string{
		p + "id::text", p + "seller_id::text", p + "title", p + "description", p + "image_url", p + "category",
		p + "price::text", p + "commission::text",
		p + "height::text", p + "length::text", p + "width::text", p + "weight::text",
		p + "is_verify", p + "is_sold_out", "COALESCE(" + p + "sold_to::text, '')", p + "created_at", p + "updated_at",
	}
	return strings.Join(cols, ", ")
}

const userColumns = `id::text, name, email, password_hash, avatar_url, role, balance::text, commission_balance::text, created_at, updated_at`

const bidColumns = `id::text, listing_id::text, user_id::text, price::text, created_at, updated_at`

func scanListing(row pgx.Row, extra ...any) (models.Listing, error) {
	var l models.Listing
	var price, commission string
	var height, length, width, weight *string
	dest := append([]any{
		&l.ListingID, &l.SellerID, &l.Title, &l.Description, &l.ImageURL, &l.Category,
		&price, &commission, &height, &length, &width, &weight,
		&l.IsVerify, &l.IsSoldOut, &l.SoldTo, &l.CreatedAt, &l.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Listing{}, err
	}

	var err error
	if l.Price, err = decimal.NewFromString(price); err != nil {
		return models.Listing{}, fmt.Errorf("parse listing price: %w", err)
	}
	if l.Commission, err = decimal.NewFromString(commission); err != nil {
		return models.Listing{}, fmt.Errorf("parse listing commission: %w", err)
	}
	for _, dim := range []struct {
		raw *string
		dst **decimal.Decimal
	}{{height, &l.Height}, {length, &l.Length}, {width, &l.Width}, {weight, &l.Weight}} {
		if dim.raw == nil {
			continue
		}
		d, err := decimal.NewFromString(*dim.raw)
		if err != nil {
			return models.Listing{}, fmt.Errorf("parse listing dimension: %w", err)
		}
		*dim.dst = &d
	}
	return l, nil
}

func scanBid(row pgx.Row, extra ...any) (models.Bid, error) {
	var b models.Bid
	var price string
	dest := append([]any{&b.BidID, &b.ListingID, &b.UserID, &price, &b.CreatedAt, &b.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Bid{}, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return models.Bid{}, fmt.Errorf("parse bid price: %w", err)
	}
	b.Price = p
	return b, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	var role, balance, commission string
	if err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarURL, &role, &balance, &commission, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return models.User{}, err
	}
	u.Role = models.Role(role)
	var err error
	if u.Balance, err = decimal.NewFromString(balance); err != nil {
		return models.User{}, fmt.Errorf("parse balance: %w", err)
	}
	if u.CommissionBalance, err = decimal.NewFromString(commission); err != nil {
		return models.User{}, fmt.Errorf("parse commission balance: %w", err)
	}
	return u, nil
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// GetListing returns a listing by id
func (r *PostgresRepo) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	if !utils.IsValidID(listingID) {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	row := r.pool.QueryRow(ctx, `SELECT `+listingColumns("")+` FROM listings WHERE id = $1`, listingID)
	listing, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// GetUserBid returns the outstanding bid of a user on a listing
func (r *PostgresRepo) GetUserBid(ctx context.Context, listingID, userID string) (models.Bid, error) {
	if !utils.IsValidID(listingID) || !utils.IsValidID(userID) {
		return models.Bid{}, fmt.Errorf("get bid of user %s on listing %s: %w", userID, listingID, auctionerrors.ErrBidNotFound)
	}
	row := r.pool.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE listing_id = $1 AND user_id = $2`, listingID, userID)
	bid, err := scanBid(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Bid{}, fmt.Errorf("get bid of user %s on listing %s: %w", userID, listingID, auctionerrors.ErrBidNotFound)
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("get bid of user %s on listing %s: %w", userID, listingID, err)
	}
	return bid, nil
}

// GetWinningBid returns the highest bid for a listing. Equal prices go to the earliest bid.
func (r *PostgresRepo) GetWinningBid(ctx context.Context, listingID string) (models.Bid, error) {
	if !utils.IsValidID(listingID) {
		return models.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+bidColumns+`
		FROM bids
		WHERE listing_id = $1
		ORDER BY price DESC, created_at ASC
		LIMIT 1
	`, listingID)
	bid, err := scanBid(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, err)
	}
	return bid, nil
}

// SaveBid upserts on (listing_id, user_id) and reports whether a new row was inserted.
// Sold listings never accept the write.
func (r *PostgresRepo) SaveBid(ctx context.Context, bid models.Bid) (bool, error) {
	if !utils.IsValidID(bid.ListingID) {
		return false, fmt.Errorf("save bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}

	var inserted bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO bids (id, listing_id, user_id, price, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::numeric, $5::timestamptz, $6::timestamptz
		FROM listings
		WHERE id = $2 AND NOT is_sold_out
		ON CONFLICT (listing_id, user_id)
		DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, bid.BidID, bid.ListingID, bid.UserID, bid.Price.String(), bid.CreatedAt, bid.UpdatedAt).Scan(&inserted)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetListing(ctx, bid.ListingID); getErr != nil {
			return false, fmt.Errorf("save bid: %w", getErr)
		}
		return false, fmt.Errorf("save bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingSoldOut)
	}
	if err != nil {
		return false, fmt.Errorf("save bid for listing %s: %w", bid.ListingID, err)
	}
	return inserted, nil
}

// GetBidHistory returns all bids for a listing with bidder and listing, most recently updated first
func (r *PostgresRepo) GetBidHistory(ctx context.Context, listingID string) ([]models.BidDetail, error) {
	if !utils.IsValidID(listingID) {
		return nil, fmt.Errorf("get bid history for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+listingColumns("l")+`,
		       b.id::text, b.listing_id::text, b.user_id::text, b.price::text, b.created_at, b.updated_at,
		       COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.avatar_url, '')
		FROM bids b
		JOIN listings l ON l.id = b.listing_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.listing_id = $1
		ORDER BY b.updated_at DESC
	`, listingID)
	if err != nil {
		return nil, fmt.Errorf("get bid history for listing %s: %w", listingID, err)
	}
	defer rows.Close()

	var history []models.BidDetail
	for rows.Next() {
		var d models.BidDetail
		var price string
		listing, err := scanListing(rows, &d.BidID, &d.ListingID, &d.UserID, &price, &d.CreatedAt, &d.UpdatedAt,
			&d.Bidder.Name, &d.Bidder.Email, &d.Bidder.AvatarURL)
		if err != nil {
			return nil, fmt.Errorf("scan bid history: %w", err)
		}
		if d.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse bid price: %w", err)
		}
		d.Bidder.UserID = d.UserID
		d.Listing = listing
		history = append(history, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bid history for listing %s: %w", listingID, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("get bid history for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return history, nil
}

// SettleListing applies one sale in a single transaction: the listing is marked sold, the admin
// is credited the commission and the seller the payout. Any failure rolls back all three.
func (r *PostgresRepo) SettleListing(ctx context.Context, s models.Settlement) (models.Listing, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Listing{}, fmt.Errorf("settle listing %s: begin: %w", s.ListingID, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	now := time.Now().UTC()
	listing, err := scanListing(tx.QueryRow(ctx, `
		UPDATE listings
		SET is_sold_out = true, sold_to = $2, updated_at = $3
		WHERE id = $1 AND NOT is_sold_out
		RETURNING `+listingColumns(""), s.ListingID, s.BuyerID, now))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`, s.ListingID).Scan(&exists); err != nil {
			return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, err)
		}
		if !exists {
			return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, auctionerrors.ErrListingNotFound)
		}
		return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, auctionerrors.ErrListingSoldOut)
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, err)
	}

	if s.AdminID != "" {
		tag, err := tx.Exec(ctx, `
			UPDATE users SET commission_balance = commission_balance + $2, updated_at = $3 WHERE id = $1
		`, s.AdminID, s.CommissionAmount.String(), now)
		if err != nil {
			return models.Listing{}, fmt.Errorf("settle listing %s: credit admin: %w", s.ListingID, err)
		}
		if tag.RowsAffected() == 0 {
			return models.Listing{}, fmt.Errorf("settle listing %s: admin %s: %w", s.ListingID, s.AdminID, auctionerrors.ErrUserNotFound)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = $3 WHERE id = $1
	`, s.SellerID, s.Payout.String(), now)
	if err != nil {
		return models.Listing{}, fmt.Errorf("settle listing %s: credit seller: %w", s.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.Listing{}, fmt.Errorf("settle listing %s: %w", s.ListingID, auctionerrors.ErrSellerNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Listing{}, fmt.Errorf("settle listing %s: commit: %w", s.ListingID, err)
	}
	committed = true
	return listing, nil
}

// CreateListing stores a new listing
func (r *PostgresRepo) CreateListing(ctx context.Context, l models.Listing) error {
	var soldTo any
	if l.SoldTo != "" {
		soldTo = l.SoldTo
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO listings (id, seller_id, title, description, image_url, category, price, commission,
		                      height, length, width, weight, is_verify, is_sold_out, sold_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, l.ListingID, l.SellerID, l.Title, l.Description, l.ImageURL, l.Category, l.Price.String(), l.Commission.String(),
		decimalArg(l.Height), decimalArg(l.Length), decimalArg(l.Width), decimalArg(l.Weight),
		l.IsVerify, l.IsSoldOut, soldTo, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

// UpdateListing replaces the mutable fields of a listing
func (r *PostgresRepo) UpdateListing(ctx context.Context, l models.Listing) error {
	if !utils.IsValidID(l.ListingID) {
		return fmt.Errorf("update listing %s: %w", l.ListingID, auctionerrors.ErrListingNotFound)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE listings
		SET title = $2, description = $3, image_url = $4, category = $5, price = $6, commission = $7,
		    height = $8, length = $9, width = $10, weight = $11, is_verify = $12, updated_at = $13
		WHERE id = $1
	`, l.ListingID, l.Title, l.Description, l.ImageURL, l.Category, l.Price.String(), l.Commission.String(),
		decimalArg(l.Height), decimalArg(l.Length), decimalArg(l.Width), decimalArg(l.Weight), l.IsVerify, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update listing %s: %w", l.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update listing %s: %w", l.ListingID, auctionerrors.ErrListingNotFound)
	}
	return nil
}

// DeleteListing removes a listing; its bids are removed by the foreign key cascade
func (r *PostgresRepo) DeleteListing(ctx context.Context, listingID string) error {
	if !utils.IsValidID(listingID) {
		return fmt.Errorf("delete listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return nil
}

func listingWhere(f models.ListingFilter) (string, []any) {
	var conds []string
	var args []any
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id::text = $%d", len(args)))
	}
	if f.SoldTo != "" {
		args = append(args, f.SoldTo)
		conds = append(conds, fmt.Sprintf("sold_to::text = $%d", len(args)))
	}
	if f.SoldOut != nil {
		args = append(args, *f.SoldOut)
		conds = append(conds, fmt.Sprintf("is_sold_out = $%d", len(args)))
	}
	if f.BidderID != "" {
		args = append(args, f.BidderID)
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM bids b WHERE b.listing_id = listings.id AND b.user_id::text = $%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListListings returns the listings matching filter, newest first
func (r *PostgresRepo) ListListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	where, args := listingWhere(filter)
	rows, err := r.pool.Query(ctx, `SELECT `+listingColumns("")+` FROM listings`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// CountListings returns the number of listings matching filter
func (r *PostgresRepo) CountListings(ctx context.Context, filter models.ListingFilter) (int, error) {
	where, args := listingWhere(filter)
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM listings`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return count, nil
}

// CountBids returns the number of bid records on a listing
func (r *PostgresRepo) CountBids(ctx context.Context, listingID string) (int, error) {
	if !utils.IsValidID(listingID) {
		return 0, nil
	}
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM bids WHERE listing_id = $1`, listingID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bids for listing %s: %w", listingID, err)
	}
	return count, nil
}

// CreateUser stores a new user. Emails are unique regardless of case.
func (r *PostgresRepo) CreateUser(ctx context.Context, u models.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar_url, role, balance, commission_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.UserID, u.Name, u.Email, u.PasswordHash, u.AvatarURL, string(u.Role), u.Balance.String(), u.CommissionBalance.String(), u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("create user %s: %w", u.Email, auctionerrors.ErrEmailTaken)
	}
	if err != nil {
		return fmt.Errorf("create user %s: %w", u.Email, err)
	}
	return nil
}

// GetUser returns a user by id
func (r *PostgresRepo) GetUser(ctx context.Context, userID string) (models.User, error) {
	if !utils.IsValidID(userID) {
		return models.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateAvatar replaces the avatar URL of a user and returns the stored account
func (r *PostgresRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) (models.User, error) {
	if !utils.IsValidID(userID) {
		return models.User{}, fmt.Errorf("update avatar of user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	user, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET avatar_url = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, userID, avatarURL))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, fmt.Errorf("update avatar of user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("update avatar of user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByEmail returns a user by email, ignoring case
func (r *PostgresRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, fmt.Errorf("get user by email %s: %w", email, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by email %s: %w", email, err)
	}
	return user, nil
}

// FindAdmin returns the earliest created admin account
func (r *PostgresRepo) FindAdmin(ctx context.Context) (models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE role = 'admin' ORDER BY created_at ASC LIMIT 1
	`))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, fmt.Errorf("find admin: %w", auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find admin: %w", err)
	}
	return user, nil
}

// ListUsers returns all users, oldest first
func (r *PostgresRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateMessage stores a contact message
func (r *PostgresRepo) CreateMessage(ctx context.Context, m models.Message) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (id, name, email, subject, message, created_at) VALUES ($1, $2, $3, $4, $5, $6)
	`, m.MessageID, m.Name, m.Email, string(m.Subject), m.Message, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListMessages returns all contact messages, newest first
func (r *PostgresRepo) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, email, subject, message, created_at FROM messages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		var subject string
		if err := rows.Scan(&m.MessageID, &m.Name, &m.Email, &subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Subject = models.MessageSubject(subject)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
