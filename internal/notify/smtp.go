package notify

import (
	"context"
	"fmt"
	"net"
	"time"

	"auction-market/utils"

	"github.com/wneessen/go-mail"
)

const defaultSMTPTimeout = 30 * time.Second

// SMTPConfig holds the mail relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender delivers email through an SMTP relay. STARTTLS is used when the relay offers it.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *net.Dialer
}

// NewSMTPSender creates an SMTPSender. An empty From falls back to the no-reply address.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.From == "" {
		cfg.From = "Auction App <no-reply@auction.local>"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	return &SMTPSender{cfg: cfg, dialer: &net.Dialer{}}
}

// Send delivers one email. The whole SMTP session is bounded by the ctx deadline,
// or by the configured timeout when ctx has none.
func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	msg, err := buildMessage(s.cfg.From, email)
	if err != nil {
		return err
	}

	client, err := s.newClient(ctx)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", s.cfg.Host, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	return nil
}

func (s *SMTPSender) newClient(ctx context.Context) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithDialContextFunc(s.deadlineDialer(ctx)),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

// deadlineDialer applies the send deadline to the connection itself,
// so a relay that stops answering mid-session cannot block the caller.
func (s *SMTPSender) deadlineDialer(sendCtx context.Context) mail.DialContextFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		conn, err := s.dialer.DialContext(ctx, network, address)
		if err != nil {
			return nil, err
		}
		if deadline, ok := sendCtx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}

func buildMessage(from string, email Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, email.Body)
	return msg, nil
}

// LogSender writes emails to the log instead of delivering them. Used when no relay is configured.
type LogSender struct{}

// Send logs email at info level
func (LogSender) Send(_ context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}
	utils.Info("email (not delivered, smtp disabled)", map[string]any{"to": email.To, "subject": email.Subject, "body": email.Body})
	return nil
}
