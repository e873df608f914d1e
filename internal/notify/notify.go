package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-market/internal/metrics"
	"auction-market/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrNoRecipient = errors.New("no recipients defined")
	ErrQueueFull   = errors.New("notification queue is full")
	ErrClosed      = errors.New("notification dispatcher is closed")
)

const defaultSendTimeout = 30 * time.Second

// Email is a plain-text message to one recipient
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers an email
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// WinnerEmail builds the message sent to the winning bidder of a settled listing
func WinnerEmail(to, sellerName, sellerEmail, title string, price decimal.Decimal) Email {
	return Email{
		To:      to,
		Subject: "Congratulations! You won the auction!",
		Body: fmt.Sprintf("Seller: %s (%s)\n\nYou have won the auction for %q with a bid of $%s.",
			sellerName, sellerEmail, title, price.StringFixed(2)),
	}
}

// Dispatcher delivers emails on a background worker.
// Notify never waits for delivery; delivery failures are logged.
type Dispatcher struct {
	sender      Sender
	metrics     *metrics.Metrics
	queue       chan Email
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts a worker draining a queue of queueSize emails
func NewDispatcher(sender Sender, queueSize int, m *metrics.Metrics) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &Dispatcher{
		sender:      sender,
		metrics:     m,
		queue:       make(chan Email, queueSize),
		sendTimeout: defaultSendTimeout,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Notify enqueues email for delivery
func (d *Dispatcher) Notify(_ context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- email:
		return nil
	default:
		d.metrics.IncNotification("dropped")
		return ErrQueueFull
	}
}

// Close stops accepting emails and waits until the queue is drained
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for email := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.sender.Send(ctx, email)
		cancel()

		if err != nil {
			d.metrics.IncNotification("failed")
			utils.Error("failed to send email", map[string]any{"to": email.To, "subject": email.Subject, "error": err.Error()})
			continue
		}
		d.metrics.IncNotification("sent")
		utils.Debug("email sent", map[string]any{"to": email.To, "subject": email.Subject})
	}
}
