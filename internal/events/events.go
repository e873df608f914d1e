package events

import (
	"context"
	"fmt"
	"time"

	"auction-market/internal/models"
	"auction-market/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeBidPlaced   = "bid.placed"
	TypeListingSold = "listing.sold"
)

type Envelope struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	EventVersion int       `json:"event_version"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewEnvelope stamps a new event with a fresh id and the current time
func NewEnvelope(eventType string, version int) (Envelope, error) {
	if eventType == "" {
		return Envelope{}, fmt.Errorf("event_type is required")
	}
	if version <= 0 {
		return Envelope{}, fmt.Errorf("event_version must be positive")
	}

	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: version,
		Timestamp:    time.Now().UTC(),
	}, nil
}

type BidPlaced struct {
	Envelope
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Price     decimal.Decimal `json:"price"`
	Created   bool            `json:"created"`
}

type ListingSold struct {
	Envelope
	ListingID        string          `json:"listing_id"`
	SellerID         string          `json:"seller_id"`
	BuyerID          string          `json:"buyer_id"`
	Price            decimal.Decimal `json:"price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Payout           decimal.Decimal `json:"payout"`
}

// Emitter publishes domain events on topics named "<prefix><event type>".
// Publishing is best effort: failures are logged and never returned.
type Emitter struct {
	publisher Publisher
	prefix    string
}

// NewEmitter creates an Emitter. A nil publisher disables publishing.
func NewEmitter(publisher Publisher, topicPrefix string) *Emitter {
	return &Emitter{publisher: publisher, prefix: topicPrefix}
}

// Topic returns the topic an event type is published on
func (e *Emitter) Topic(eventType string) string {
	return e.prefix + eventType
}

// BidPlaced publishes a bid.placed event
func (e *Emitter) BidPlaced(ctx context.Context, bid models.Bid, created bool) {
	env, err := NewEnvelope(TypeBidPlaced, 1)
	if err != nil {
		return
	}
	e.publish(ctx, TypeBidPlaced, bid.ListingID, BidPlaced{
		Envelope:  env,
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		UserID:    bid.UserID,
		Price:     bid.Price,
		Created:   created,
	})
}

// ListingSold publishes a listing.sold event
func (e *Emitter) ListingSold(ctx context.Context, s models.Settlement) {
	env, err := NewEnvelope(TypeListingSold, 1)
	if err != nil {
		return
	}
	e.publish(ctx, TypeListingSold, s.ListingID, ListingSold{
		Envelope:         env,
		ListingID:        s.ListingID,
		SellerID:         s.SellerID,
		BuyerID:          s.BuyerID,
		Price:            s.Price,
		CommissionAmount: s.CommissionAmount,
		Payout:           s.Payout,
	})
}

func (e *Emitter) publish(ctx context.Context, eventType, key string, value any) {
	if e == nil || e.publisher == nil {
		return
	}
	topic := e.Topic(eventType)
	if _, _, err := e.publisher.PublishJSON(ctx, topic, key, value); err != nil {
		utils.Warn("event publish failed", map[string]any{"topic": topic, "key": key, "error": err.Error()})
	}
}
