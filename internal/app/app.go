package app

import (
	"context"
	"time"

	account "auction-market/internal/accountService"
	bidding "auction-market/internal/biddingService"
	"auction-market/internal/config"
	"auction-market/internal/events"
	"auction-market/internal/health"
	listing "auction-market/internal/listingService"
	"auction-market/internal/lock"
	message "auction-market/internal/messageService"
	"auction-market/internal/metrics"
	"auction-market/internal/notify"
	"auction-market/internal/repository"
	"auction-market/internal/server"
	settlement "auction-market/internal/settlementService"
	accounthandler "auction-market/services/account/handler"
	biddinghandler "auction-market/services/bidding/handler"
	listinghandler "auction-market/services/listing/handler"
	messagehandler "auction-market/services/message/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Components are the infrastructure pieces chosen by the caller.
// Nil Locker, Publisher and Sender fall back to in-process defaults.
type Components struct {
	Store     repository.Store
	Locker    lock.Locker
	Publisher events.Publisher
	Sender    notify.Sender
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
}

// App is the fully wired marketplace
type App struct {
	Router     *gin.Engine
	Health     *health.Manager
	Dispatcher *notify.Dispatcher

	store     repository.Store
	publisher events.Publisher
}

// New builds services, handlers and the router on top of c
func New(cfg *config.AppConfig, c Components) *App {
	locker := c.Locker
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	sender := c.Sender
	if sender == nil {
		sender = notify.LogSender{}
	}

	m := c.Metrics
	emitter := events.NewEmitter(c.Publisher, cfg.Kafka.TopicPrefix+".")
	dispatcher := notify.NewDispatcher(sender, cfg.Notify.QueueSize, m)

	biddingSvc := bidding.NewBiddingService(c.Store, locker, emitter, m)
	settlementSvc := settlement.NewSettlementService(c.Store, c.Store, locker,
		settlement.WithAdminUserID(cfg.Auction.AdminUserID),
		settlement.WithNotifier(dispatcher),
		settlement.WithEmitter(emitter),
		settlement.WithMetrics(m),
	)
	listingSvc := listing.NewListingService(c.Store, locker, cfg.Auction.AutoVerifyListings)
	accountSvc := account.NewAccountService(c.Store, c.Store, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	messageSvc := message.NewMessageService(c.Store)

	hm := health.NewManager(false)

	router := server.SetupRouter(server.Dependencies{
		ServiceName: cfg.ServiceName,
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		Users:       c.Store,
		Bidding:     biddinghandler.NewBiddingHandler(biddingSvc, settlementSvc),
		Listings:    listinghandler.NewListingHandler(listingSvc),
		Accounts:    accounthandler.NewAccountHandler(accountSvc, cfg.Auth.TokenTTL, cfg.Env == "prod"),
		Messages:    messagehandler.NewMessageHandler(messageSvc),
		Health:      hm,
		Metrics:     m,
		Registry:    c.Registry,
		MetricsURL:  cfg.MetricsPath,
	})

	a := &App{
		Router:     router,
		Health:     hm,
		Dispatcher: dispatcher,
		store:      c.Store,
		publisher:  c.Publisher,
	}
	hm.AddCheck("storage", a.Ping)
	return a
}

// Close drains pending notifications and releases the publisher and store
func (a *App) Close() {
	a.Health.SetReady(false)
	a.Dispatcher.Close()
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
	a.store.Close()
}

// Ping checks the store with a bounded timeout
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return a.store.Ping(ctx)
}
