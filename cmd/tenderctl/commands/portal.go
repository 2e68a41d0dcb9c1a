// Package commands implements the tenderctl subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/ports"
	"github.com/tenderhub/portal-client/internal/core/service"
	"github.com/tenderhub/portal-client/internal/infrastructure/authapi"
	mongodb "github.com/tenderhub/portal-client/internal/infrastructure/db/mongo"
	redisdb "github.com/tenderhub/portal-client/internal/infrastructure/db/redis"
	"github.com/tenderhub/portal-client/internal/infrastructure/httpclient"
	"github.com/tenderhub/portal-client/internal/infrastructure/kv"
	"github.com/tenderhub/portal-client/internal/infrastructure/tokenstore"
	"github.com/tenderhub/portal-client/internal/pkg/config"
	"github.com/tenderhub/portal-client/pkg/logger"
)

// portal is the client wired from configuration for one command run.
type portal struct {
	cfg       *config.Config
	log       zerolog.Logger
	out       io.Writer
	session   *service.SessionManager
	scroller  *service.Scroller
	dashboard *service.DashboardService
	closers   []func() error
}

func openPortal(ctx context.Context) (*portal, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, App: "tenderctl"})

	p := &portal{cfg: cfg, log: log, out: os.Stdout}
	backend, err := p.openStore(ctx)
	if err != nil {
		return nil, err
	}

	store := tokenstore.New(backend, logger.Component("tokenstore"))
	auth := authapi.NewClient(cfg.Endpoints.AuthURL, httpclient.New(cfg.HTTP.Timeout))
	p.session = service.NewSessionManager(store, auth, logger.Component("session"))
	if err := p.session.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore session")
	}

	client := httpclient.NewClient(httpclient.New(cfg.HTTP.Timeout), p.session, logger.Component("http"))
	feed := service.NewProposalFeed(client, cfg.Endpoints.ProposalURL, cfg.HTTP.PageSize, logger.Component("proposals"))
	p.scroller = service.NewScroller(feed, logger.Component("scroller"))
	p.dashboard = service.NewDashboardService(client, cfg.Endpoints.DashboardURL, logger.Component("dashboard"))
	return p, nil
}

// openStore returns the key-value backend named by SESSION_STORE.
func (p *portal) openStore(ctx context.Context) (ports.KeyValueStore, error) {
	cfg := p.cfg
	switch cfg.Session.Store {
	case config.StoreMemory:
		return kv.NewMemory(), nil

	case config.StoreBolt:
		b, err := kv.OpenBolt(cfg.Session.BoltPath)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, b.Close)
		return b, nil

	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, client.Close)
		return redisdb.NewKV(client, cfg.Session.Prefix, cfg.Session.TTL), nil

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "tenderctl",
		})
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, func() error { return client.Disconnect(context.Background()) })
		return mongodb.NewKV(db, cfg.Session.Prefix), nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}

func (p *portal) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			p.log.Warn().Err(err).Msg("close session backend")
		}
	}
}
